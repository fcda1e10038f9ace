package domain

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/claims"
)

// StateMachine defines the claim adjudication transitions
type StateMachine interface {
	// TransitionToPaid records a payer remittance that pays the claim
	TransitionToPaid(ctx context.Context, claimNumber string) (claims.Claim, error)
	// TransitionToDenied records a payer denial
	TransitionToDenied(ctx context.Context, claimNumber string) (claims.Claim, error)
}

// TxBeginner starts the transaction a transition runs in.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ClaimStateMachine handles claim status transitions. It owns the transaction boundary:
// each transition locks the claim row, checks the current status and updates it.
type ClaimStateMachine struct {
	db     TxBeginner
	withTx func(tx pgx.Tx) claims.Querier
}

var _ StateMachine = (*ClaimStateMachine)(nil)

// NewClaimStateMachine creates a claim state machine with database and repository access
func NewClaimStateMachine(db *pgxpool.Pool, claimRepo *claims.Queries) *ClaimStateMachine {
	return &ClaimStateMachine{
		db:     db,
		withTx: func(tx pgx.Tx) claims.Querier { return claimRepo.WithTx(tx) },
	}
}

// transitionWithLock performs a state transition with row-level locking and transaction management
func (sm *ClaimStateMachine) transitionWithLock(ctx context.Context, claimNumber string, transitionFunc func(q claims.Querier, current claims.Claim) (claims.Claim, error)) (claims.Claim, error) {
	tx, err := sm.db.Begin(ctx)
	if err != nil {
		return claims.Claim{}, &errs.Error{Code: errs.Internal, Message: "failed to start transaction"}
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	q := sm.withTx(tx)

	// SELECT FOR UPDATE: the row stays locked until commit or rollback
	current, err := q.GetClaimForUpdate(ctx, claimNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return claims.Claim{}, &errs.Error{Code: errs.NotFound, Message: "claim not found"}
		}
		return claims.Claim{}, &errs.Error{Code: errs.Internal, Message: "failed to lock claim for state transition"}
	}

	updated, err := transitionFunc(q, current)
	if err != nil {
		return claims.Claim{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return claims.Claim{}, &errs.Error{Code: errs.Internal, Message: "failed to commit state transition"}
	}

	return updated, nil
}

// TransitionToPaid moves a submitted claim, or a denied claim overturned on appeal, to paid
func (sm *ClaimStateMachine) TransitionToPaid(ctx context.Context, claimNumber string) (claims.Claim, error) {
	return sm.transitionWithLock(ctx, claimNumber, func(q claims.Querier, current claims.Claim) (claims.Claim, error) {
		if current.Status == string(model.ClaimStatusPaid) {
			return claims.Claim{}, &errs.Error{
				Code:    errs.FailedPrecondition,
				Message: "claim is already paid",
			}
		}

		return updateStatus(ctx, q, claimNumber, model.ClaimStatusPaid)
	})
}

// TransitionToDenied moves a submitted claim to denied
func (sm *ClaimStateMachine) TransitionToDenied(ctx context.Context, claimNumber string) (claims.Claim, error) {
	return sm.transitionWithLock(ctx, claimNumber, func(q claims.Querier, current claims.Claim) (claims.Claim, error) {
		if current.Status != string(model.ClaimStatusSubmitted) {
			return claims.Claim{}, &errs.Error{
				Code:    errs.FailedPrecondition,
				Message: "claim must be in submitted status to be denied",
			}
		}

		return updateStatus(ctx, q, claimNumber, model.ClaimStatusDenied)
	})
}

func updateStatus(ctx context.Context, q claims.Querier, claimNumber string, status model.ClaimStatus) (claims.Claim, error) {
	updated, err := q.UpdateClaimStatus(ctx, claims.UpdateClaimStatusParams{
		ClaimNumber: claimNumber,
		Status:      string(status),
	})
	if err != nil {
		return claims.Claim{}, &errs.Error{Code: errs.Internal, Message: "failed to update claim status"}
	}
	return updated, nil
}
