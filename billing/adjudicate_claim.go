package billing

import (
	"context"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"github.com/carelane/hospital-billing/billing/business/revenue"
	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/model"
)

// OperationClaimAdjudication deduplicates payer remittances per claim
const OperationClaimAdjudication = "CLAIM_ADJUDICATION"

type AdjudicateClaimRequest struct {
	RemittanceID string `json:"remittance_id" validate:"required,max=64"`
	Outcome      string `json:"outcome" validate:"required,oneof=paid denied"`
}

// AdjudicateClaim applies a payer remittance to a claim. A remittance that is delivered
// again returns the outcome recorded the first time.
//
//encore:api public path=/v1/claims/:claimNumber/adjudication method=POST
func (s *Service) AdjudicateClaim(ctx context.Context, claimNumber string, req *AdjudicateClaimRequest) (*ClaimResponse, error) {
	key, err := idempotency.DeriveKey(
		idempotency.Field("claim", claimNumber),
		idempotency.Field("remittance", req.RemittanceID),
	)
	if err != nil {
		return nil, toAPIError(err)
	}

	ctx = idempotency.WithCallerContext(ctx, "remittance-"+req.RemittanceID)
	claim, err := idempotency.Execute(ctx, s.coordinator, OperationClaimAdjudication, key,
		func(ctx context.Context) (*model.Claim, error) {
			return s.business.AdjudicateClaim(ctx, claimNumber, model.ClaimStatus(req.Outcome))
		})
	if err != nil {
		rlog.Error("failed to adjudicate claim", "claim_number", claimNumber, "remittance_id", req.RemittanceID, "error", err)
		return nil, toAPIError(err)
	}

	return &ClaimResponse{
		Claim:       *claim,
		AgingBucket: revenue.AgingBucket(claim.CreatedAt, time.Now()),
	}, nil
}

// Validate implements validation for AdjudicateClaimRequest
func (r *AdjudicateClaimRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	return nil
}
