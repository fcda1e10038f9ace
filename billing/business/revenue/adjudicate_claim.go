package revenue

import (
	"context"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/claims"
)

// AdjudicateClaim applies the payer's decision on a submitted claim
func (b *business) AdjudicateClaim(ctx context.Context, claimNumber string, outcome model.ClaimStatus) (*model.Claim, error) {
	var (
		dbClaim claims.Claim
		err     error
	)
	switch outcome {
	case model.ClaimStatusPaid:
		dbClaim, err = b.stateMachine.TransitionToPaid(ctx, claimNumber)
	case model.ClaimStatusDenied:
		dbClaim, err = b.stateMachine.TransitionToDenied(ctx, claimNumber)
	default:
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "outcome must be paid or denied"}
	}
	if err != nil {
		rlog.Error("failed to adjudicate claim", "claim_number", claimNumber, "outcome", outcome, "error", err)
		return nil, err
	}

	return convertDBClaimToModel(dbClaim), nil
}
