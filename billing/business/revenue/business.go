package revenue

import (
	"context"

	"github.com/carelane/hospital-billing/billing/domain"
	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/claims"
	"github.com/carelane/hospital-billing/billing/store/payments"
)

type Business interface {
	VerifyCoverage(ctx context.Context, encounter *model.Encounter) (*model.CoverageDecision, error)
	GenerateClaim(ctx context.Context, encounter *model.Encounter, coverage *model.CoverageDecision, idempotencyKey string) (*model.Claim, error)
	GetClaim(ctx context.Context, claimNumber string) (*model.Claim, error)
	ChargePatient(ctx context.Context, claim *model.Claim, method model.PaymentMethod, idempotencyKey string) (*model.Payment, error)
	AdjudicateClaim(ctx context.Context, claimNumber string, outcome model.ClaimStatus) (*model.Claim, error)
}

// business handles the revenue cycle callbacks run by the billing workflow
type business struct {
	claimRepo    claims.Querier
	paymentRepo  payments.Querier
	stateMachine domain.StateMachine
}

// NewRevenueBusiness creates the revenue business layer
func NewRevenueBusiness(claimRepo claims.Querier, paymentRepo payments.Querier, stateMachine domain.StateMachine) Business {
	return &business{
		claimRepo:    claimRepo,
		paymentRepo:  paymentRepo,
		stateMachine: stateMachine,
	}
}
