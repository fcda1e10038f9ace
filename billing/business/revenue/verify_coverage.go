package revenue

import (
	"context"
	"fmt"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
)

var coveragePercentByPlan = map[model.PlanType]int{
	model.PlanTypeCommercial: 70,
	model.PlanTypeMedicare:   80,
	model.PlanTypeMedicaid:   100,
	model.PlanTypeSelfPay:    0,
}

// VerifyCoverage decides whether the encounter's plan pays for it and at what rate
func (b *business) VerifyCoverage(ctx context.Context, encounter *model.Encounter) (*model.CoverageDecision, error) {
	percent, ok := coveragePercentByPlan[encounter.PlanType]
	if !ok {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: fmt.Sprintf("unknown plan type %q", encounter.PlanType)}
	}

	decision := &model.CoverageDecision{
		PlanType:                 encounter.PlanType,
		DeductibleRemainingCents: encounter.DeductibleRemainingCents,
	}

	switch {
	case encounter.PlanType == model.PlanTypeSelfPay:
		decision.Reason = "self_pay"
	case encounter.AuthorizationID == "":
		decision.Reason = "missing_authorization"
	default:
		decision.Eligible = true
		decision.CoveragePercent = percent
	}

	// Medicaid carries no deductible.
	if encounter.PlanType == model.PlanTypeMedicaid {
		decision.DeductibleRemainingCents = 0
	}

	return decision, nil
}

// SplitCharges divides billed charges into the payer's share and the patient's share.
// The patient pays the remaining deductible first; coinsurance applies to the rest.
func SplitCharges(chargesCents int64, coverage *model.CoverageDecision) (coveredCents, patientCents int64) {
	if coverage == nil || !coverage.Eligible || chargesCents <= 0 {
		return 0, max(chargesCents, 0)
	}

	deductible := min(max(coverage.DeductibleRemainingCents, 0), chargesCents)
	coveredCents = (chargesCents - deductible) * int64(coverage.CoveragePercent) / 100
	return coveredCents, chargesCents - coveredCents
}
