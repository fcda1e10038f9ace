package revenue

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
)

func (b *business) GetClaim(ctx context.Context, claimNumber string) (*model.Claim, error) {
	dbClaim, err := b.claimRepo.GetClaimByNumber(ctx, claimNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &errs.Error{Code: errs.NotFound, Message: "claim not found"}
		}
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to get claim"}
	}

	return convertDBClaimToModel(dbClaim), nil
}
