package billing

import (
	"context"
	"time"

	"encore.dev/rlog"

	"github.com/carelane/hospital-billing/billing/business/revenue"
	"github.com/carelane/hospital-billing/billing/model"
)

type ClaimResponse struct {
	Claim       model.Claim       `json:"claim"`
	AgingBucket model.AgingBucket `json:"aging_bucket"`
}

//encore:api public path=/v1/claims/:claimNumber method=GET
func (s *Service) GetClaim(ctx context.Context, claimNumber string) (*ClaimResponse, error) {
	claim, err := s.business.GetClaim(ctx, claimNumber)
	if err != nil {
		rlog.Error("failed to get claim", "error", err, "claim_number", claimNumber)
		return nil, err
	}

	return &ClaimResponse{
		Claim:       *claim,
		AgingBucket: revenue.AgingBucket(claim.CreatedAt, time.Now()),
	}, nil
}
