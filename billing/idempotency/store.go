package idempotency

import (
	"context"
	"time"
)

// KeyStore persists one Record per (operation type, operation key) pair.
//
// Contract:
//   - Insert returns ErrDuplicateKey when the pair exists; uniqueness must be enforced by
//     the storage engine, not by a prior lookup.
//   - UpdateIfVersion and DeleteIfVersion return ErrVersionConflict when the stored
//     version differs from expectedVersion (or the row is gone). On success
//     UpdateIfVersion stores rec with Version set to expectedVersion+1.
//   - Find returns (nil, nil) when no record exists.
type KeyStore interface {
	Find(ctx context.Context, operationType, operationKey string) (*Record, error)
	Insert(ctx context.Context, rec *Record) error
	UpdateIfVersion(ctx context.Context, rec *Record, expectedVersion int64) error
	DeleteIfVersion(ctx context.Context, operationType, operationKey string, expectedVersion int64) error
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
	FindStuckProcessing(ctx context.Context, olderThan time.Time, limit int) ([]Record, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	FindByCallerContext(ctx context.Context, callerContext string) ([]Record, error)
}

// Store is a KeyStore that can scope a unit of work to its own transaction.
//
// InTx must commit when fn returns nil and roll back otherwise. The transaction is
// always a fresh one, independent of any transaction the caller may hold.
type Store interface {
	KeyStore
	InTx(ctx context.Context, fn func(tx KeyStore) error) error
}
