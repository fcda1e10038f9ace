package revenue

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/claims"
)

// GenerateClaim classifies the encounter and files a claim for it. A claim already filed
// under idempotencyKey is returned as is.
func (b *business) GenerateClaim(ctx context.Context, encounter *model.Encounter, coverage *model.CoverageDecision, idempotencyKey string) (*model.Claim, error) {
	if idempotencyKey == "" {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key is required"}
	}

	drgCode, err := ClassifyDRG(encounter)
	if err != nil {
		return nil, err
	}

	coveredCents, patientCents := SplitCharges(encounter.ChargesCents, coverage)

	dbClaim, err := b.claimRepo.CreateClaim(ctx, claims.CreateClaimParams{
		EncounterID:                encounter.EncounterID,
		PatientID:                  encounter.PatientID,
		AuthorizationID:            encounter.AuthorizationID,
		DrgCode:                    drgCode,
		BilledCents:                encounter.ChargesCents,
		CoveredCents:               coveredCents,
		PatientResponsibilityCents: patientCents,
		IdempotencyKey:             idempotencyKey,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			existing, getErr := b.claimRepo.GetClaimByIdempotencyKey(ctx, idempotencyKey)
			if getErr != nil {
				return nil, &errs.Error{Code: errs.Internal, Message: "failed to load existing claim"}
			}
			return convertDBClaimToModel(existing), nil
		}

		return nil, &errs.Error{Code: errs.Internal, Message: "failed to create claim"}
	}

	return convertDBClaimToModel(dbClaim), nil
}

// convertDBClaimToModel converts a database Claim to a domain model Claim
func convertDBClaimToModel(dbClaim claims.Claim) *model.Claim {
	return &model.Claim{
		ID:                         dbClaim.ID,
		ClaimNumber:                dbClaim.ClaimNumber,
		EncounterID:                dbClaim.EncounterID,
		PatientID:                  dbClaim.PatientID,
		AuthorizationID:            dbClaim.AuthorizationID,
		DRGCode:                    dbClaim.DrgCode,
		BilledCents:                dbClaim.BilledCents,
		CoveredCents:               dbClaim.CoveredCents,
		PatientResponsibilityCents: dbClaim.PatientResponsibilityCents,
		Status:                     model.ClaimStatus(dbClaim.Status),
		IdempotencyKey:             dbClaim.IdempotencyKey,
		CreatedAt:                  dbClaim.CreatedAt.Time,
	}
}
