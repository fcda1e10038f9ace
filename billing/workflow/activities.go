package workflow

import (
	"context"
	"errors"
	"strconv"

	"encore.dev/beta/errs"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/carelane/hospital-billing/billing/business/revenue"
	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/model"
)

// Operation types under which the activities' side effects are deduplicated
const (
	OperationClaimGeneration = "CLAIM_GENERATION"
	OperationPayment         = "PAYMENT"
)

// ActivityDependencies holds the dependencies needed by activities
type ActivityDependencies struct {
	RevenueBusiness revenue.Business
	Coordinator     *idempotency.Coordinator
}

var activityDeps *ActivityDependencies

// SetActivityDependencies sets the dependencies for activities
func SetActivityDependencies(revenueBusiness revenue.Business, coordinator *idempotency.Coordinator) {
	activityDeps = &ActivityDependencies{
		RevenueBusiness: revenueBusiness,
		Coordinator:     coordinator,
	}
}

func dependenciesReady() bool {
	return activityDeps != nil && activityDeps.RevenueBusiness != nil && activityDeps.Coordinator != nil
}

// ClaimKey derives the idempotency key of the claim for an encounter's final charges
func ClaimKey(encounter *model.Encounter) (string, error) {
	return idempotency.DeriveKey(
		idempotency.Field("encounter", encounter.EncounterID),
		idempotency.Field("patient", encounter.PatientID),
		idempotency.Field("auth", encounter.AuthorizationID),
		idempotency.Field("charges_cents", strconv.FormatInt(encounter.ChargesCents, 10)),
	)
}

// PaymentKey derives the idempotency key of the patient charge on a claim
func PaymentKey(claim *model.Claim) (string, error) {
	return idempotency.DeriveKey(
		idempotency.Field("patient", claim.PatientID),
		idempotency.Field("claim", claim.ClaimNumber),
		idempotency.Field("amount_cents", strconv.FormatInt(claim.PatientResponsibilityCents, 10)),
	)
}

// VerifyCoverageActivity checks the encounter's plan eligibility. It has no side effects
// and is safe to retry without deduplication.
func VerifyCoverageActivity(ctx context.Context, encounter model.Encounter) (*model.CoverageDecision, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing verify coverage activity", "encounterID", encounter.EncounterID)

	if !dependenciesReady() {
		logger.Error("Activity dependencies not set")
		return nil, temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	decision, err := activityDeps.RevenueBusiness.VerifyCoverage(ctx, &encounter)
	if err != nil {
		logger.Error("Failed to verify coverage", "encounterID", encounter.EncounterID, "error", err)
		return nil, toActivityError(err)
	}

	return decision, nil
}

// GenerateClaimActivity files the encounter's claim at most once per derived claim key
func GenerateClaimActivity(ctx context.Context, encounter model.Encounter, coverage model.CoverageDecision) (*model.Claim, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing generate claim activity", "encounterID", encounter.EncounterID)

	if !dependenciesReady() {
		logger.Error("Activity dependencies not set")
		return nil, temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	key, err := ClaimKey(&encounter)
	if err != nil {
		return nil, toActivityError(err)
	}

	ctx = idempotency.WithCallerContext(ctx, activity.GetInfo(ctx).WorkflowExecution.ID)
	claim, err := idempotency.Execute(ctx, activityDeps.Coordinator, OperationClaimGeneration, key,
		func(ctx context.Context) (*model.Claim, error) {
			return activityDeps.RevenueBusiness.GenerateClaim(ctx, &encounter, &coverage, key)
		})
	if err != nil {
		logger.Error("Failed to generate claim", "encounterID", encounter.EncounterID, "key", key, "error", err)
		return nil, toActivityError(err)
	}

	logger.Info("Successfully generated claim", "encounterID", encounter.EncounterID, "claimNumber", claim.ClaimNumber)
	return claim, nil
}

// ChargePatientActivity charges the patient's responsibility at most once per claim
func ChargePatientActivity(ctx context.Context, claim model.Claim, method model.PaymentMethod) (*model.Payment, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing charge patient activity", "claimNumber", claim.ClaimNumber, "amountCents", claim.PatientResponsibilityCents)

	if !dependenciesReady() {
		logger.Error("Activity dependencies not set")
		return nil, temporal.NewApplicationError("activity dependencies not initialized", "DependencyError")
	}

	key, err := PaymentKey(&claim)
	if err != nil {
		return nil, toActivityError(err)
	}

	ctx = idempotency.WithCallerContext(ctx, activity.GetInfo(ctx).WorkflowExecution.ID)
	payment, err := idempotency.Execute(ctx, activityDeps.Coordinator, OperationPayment, key,
		func(ctx context.Context) (*model.Payment, error) {
			return activityDeps.RevenueBusiness.ChargePatient(ctx, &claim, method, key)
		})
	if err != nil {
		logger.Error("Failed to charge patient", "claimNumber", claim.ClaimNumber, "key", key, "error", err)
		return nil, toActivityError(err)
	}

	logger.Info("Successfully charged patient", "claimNumber", claim.ClaimNumber, "paymentID", payment.ID)
	return payment, nil
}

// toActivityError decides whether Temporal should retry a failed activity. Contention on
// the idempotency key is transient; bad input and undecodable results are not.
func toActivityError(err error) error {
	switch kind := idempotency.KindOf(err); kind {
	case idempotency.KindConcurrentExecution, idempotency.KindMaxRetriesExceeded, idempotency.KindStorageConflict:
		return temporal.NewApplicationErrorWithCause(err.Error(), kind.String(), err)
	case idempotency.KindValidation, idempotency.KindSerialization, idempotency.KindAlreadyCompleted:
		return temporal.NewNonRetryableApplicationError(err.Error(), kind.String(), err)
	}

	var e *errs.Error
	if errors.As(err, &e) && (e.Code == errs.InvalidArgument || e.Code == errs.NotFound) {
		return temporal.NewNonRetryableApplicationError(e.Message, e.Code.String(), err)
	}
	return err
}
