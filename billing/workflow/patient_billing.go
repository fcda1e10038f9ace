package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/carelane/hospital-billing/billing/model"
)

const defaultDischargeTimeout = 30 * 24 * time.Hour

const (
	OutcomeBilled           = "billed"
	OutcomeCancelled        = "cancelled"
	OutcomeDischargeTimeout = "discharge_timeout"
)

// PatientBillingParams contains parameters for starting the billing workflow
type PatientBillingParams struct {
	Encounter        model.Encounter     `json:"encounter"`
	PaymentMethod    model.PaymentMethod `json:"payment_method"`
	DischargeTimeout time.Duration       `json:"discharge_timeout"`
}

type PatientBillingResult struct {
	Outcome  string                  `json:"outcome"`
	Reason   string                  `json:"reason,omitempty"`
	Coverage *model.CoverageDecision `json:"coverage,omitempty"`
	Claim    *model.Claim            `json:"claim,omitempty"`
	Payment  *model.Payment          `json:"payment,omitempty"`
}

// PatientBilling verifies coverage at admission, waits for discharge, then files the claim
// and charges the patient's share.
func PatientBilling(ctx workflow.Context, params PatientBillingParams) (*PatientBillingResult, error) {
	logger := workflow.GetLogger(ctx)
	encounter := params.Encounter
	logger.Info("Starting patient billing workflow", "encounterID", encounter.EncounterID, "patientID", encounter.PatientID)

	coverage, err := verifyCoverage(ctx, encounter)
	if err != nil {
		logger.Error("Failed to verify coverage", "encounterID", encounter.EncounterID, "error", err)
		return nil, err
	}
	result := &PatientBillingResult{Coverage: coverage}
	logger.Info("Coverage verified", "encounterID", encounter.EncounterID, "eligible", coverage.Eligible, "percent", coverage.CoveragePercent)

	timeout := params.DischargeTimeout
	if timeout <= 0 {
		timeout = defaultDischargeTimeout
	}
	timerCtx, cancelTimer := workflow.WithCancel(ctx)
	timer := workflow.NewTimer(timerCtx, timeout)

	dischargeCh := workflow.GetSignalChannel(ctx, DischargePatientSignalName)
	cancelCh := workflow.GetSignalChannel(ctx, CancelBillingSignalName)

	discharged := false
	selector := workflow.NewSelector(ctx)

	selector.AddReceive(dischargeCh, func(c workflow.ReceiveChannel, more bool) {
		var signal DischargePatientSignal
		c.Receive(ctx, &signal)
		logger.Info("Patient discharged", "encounterID", encounter.EncounterID, "chargesCents", signal.ChargesCents)

		if len(signal.DiagnosisCodes) > 0 {
			encounter.DiagnosisCodes = signal.DiagnosisCodes
		}
		encounter.LengthOfStayDays = signal.LengthOfStayDays
		encounter.ChargesCents = signal.ChargesCents
		discharged = true
	})

	selector.AddReceive(cancelCh, func(c workflow.ReceiveChannel, more bool) {
		var signal CancelBillingSignal
		c.Receive(ctx, &signal)
		logger.Info("Received cancel billing signal", "encounterID", encounter.EncounterID, "reason", signal.Reason)
		result.Outcome = OutcomeCancelled
		result.Reason = signal.Reason
	})

	selector.AddFuture(timer, func(f workflow.Future) {
		if err := f.Get(ctx, nil); err != nil {
			return
		}
		logger.Warn("No discharge received before timeout", "encounterID", encounter.EncounterID, "timeout", timeout)
		result.Outcome = OutcomeDischargeTimeout
	})

	selector.Select(ctx)
	cancelTimer()

	if !discharged {
		logger.Info("Patient billing workflow finished without a claim", "encounterID", encounter.EncounterID, "outcome", result.Outcome)
		return result, nil
	}

	claim, err := generateClaim(ctx, encounter, *coverage)
	if err != nil {
		logger.Error("Failed to generate claim", "encounterID", encounter.EncounterID, "error", err)
		return nil, err
	}
	result.Claim = claim
	logger.Info("Claim generated", "encounterID", encounter.EncounterID, "claimNumber", claim.ClaimNumber, "drg", claim.DRGCode)

	if claim.PatientResponsibilityCents > 0 {
		payment, err := chargePatient(ctx, *claim, params.PaymentMethod)
		if err != nil {
			logger.Error("Failed to charge patient", "claimNumber", claim.ClaimNumber, "error", err)
			return nil, err
		}
		result.Payment = payment
	}

	result.Outcome = OutcomeBilled
	logger.Info("Patient billing workflow completed", "encounterID", encounter.EncounterID, "claimNumber", claim.ClaimNumber)
	return result, nil
}

// verifyCoverage executes the VerifyCoverage activity
func verifyCoverage(ctx workflow.Context, encounter model.Encounter) (*model.CoverageDecision, error) {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    500 * time.Millisecond,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    4,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	var coverage model.CoverageDecision
	if err := workflow.ExecuteActivity(activityCtx, VerifyCoverageActivity, encounter).Get(ctx, &coverage); err != nil {
		return nil, err
	}
	return &coverage, nil
}

// generateClaim executes the GenerateClaim activity
func generateClaim(ctx workflow.Context, encounter model.Encounter, coverage model.CoverageDecision) (*model.Claim, error) {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    15 * time.Second,
			MaximumAttempts:    6,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	var claim model.Claim
	if err := workflow.ExecuteActivity(activityCtx, GenerateClaimActivity, encounter, coverage).Get(ctx, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// chargePatient executes the ChargePatient activity
func chargePatient(ctx workflow.Context, claim model.Claim, method model.PaymentMethod) (*model.Payment, error) {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)
	var payment model.Payment
	if err := workflow.ExecuteActivity(activityCtx, ChargePatientActivity, claim, method).Get(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
