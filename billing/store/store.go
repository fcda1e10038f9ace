package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelane/hospital-billing/billing/store/claims"
	"github.com/carelane/hospital-billing/billing/store/idempotencykeys"
	"github.com/carelane/hospital-billing/billing/store/payments"
)

// Store combines all domain-specific queriers
type Store struct {
	IdempotencyKeys idempotencykeys.Querier
	Claims          claims.Querier
	Payments        payments.Querier
}

// NewStore creates a new Store with all domain queriers
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		IdempotencyKeys: idempotencykeys.New(db),
		Claims:          claims.New(db),
		Payments:        payments.New(db),
	}
}

// WithTx returns a Store whose queriers all run inside tx
func WithTx(tx pgx.Tx) *Store {
	return &Store{
		IdempotencyKeys: idempotencykeys.New(tx),
		Claims:          claims.New(tx),
		Payments:        payments.New(tx),
	}
}
