// Package pgstore implements idempotency.Store on PostgreSQL through the generated
// idempotencykeys queries.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/store"
	"github.com/carelane/hospital-billing/billing/store/idempotencykeys"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is a PostgreSQL backed idempotency.Store.
type Store struct {
	db      TxBeginner
	queries idempotencykeys.Querier
	withTx  func(tx pgx.Tx) idempotencykeys.Querier
}

var _ idempotency.Store = (*Store)(nil)

// New creates a Store on pool through the shared query repository.
func New(pool *pgxpool.Pool) *Store {
	return NewFromRepository(pool, store.NewStore(pool))
}

// NewFromRepository uses repo's idempotency keys querier outside transactions and
// store.WithTx inside them.
func NewFromRepository(db TxBeginner, repo *store.Store) *Store {
	return NewWithQuerier(db, repo.IdempotencyKeys, func(tx pgx.Tx) idempotencykeys.Querier {
		return store.WithTx(tx).IdempotencyKeys
	})
}

// NewWithQuerier wires a Store from its parts; withTx builds the querier used inside InTx.
func NewWithQuerier(db TxBeginner, queries idempotencykeys.Querier, withTx func(tx pgx.Tx) idempotencykeys.Querier) *Store {
	return &Store{db: db, queries: queries, withTx: withTx}
}

// InTx runs fn inside a new transaction. The transaction commits when fn returns nil and
// rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(tx idempotency.KeyStore) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			// Rollback on a committed or broken tx is harmless; the original error wins.
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(&Store{db: s.db, queries: s.withTx(tx), withTx: s.withTx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return mapError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *Store) Find(ctx context.Context, operationType, operationKey string) (*idempotency.Record, error) {
	row, err := s.queries.GetIdempotencyRecord(ctx, idempotencykeys.GetIdempotencyRecordParams{
		OperationType: operationType,
		OperationKey:  operationKey,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(fmt.Errorf("get idempotency record: %w", err))
	}
	rec := convertDBRecordToModel(row)
	return &rec, nil
}

func (s *Store) Insert(ctx context.Context, rec *idempotency.Record) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", rec.ID, err)
	}
	err = s.queries.InsertIdempotencyRecord(ctx, idempotencykeys.InsertIdempotencyRecordParams{
		ID:            pgtype.UUID{Bytes: id, Valid: true},
		OperationType: rec.OperationType,
		OperationKey:  rec.OperationKey,
		CallerContext: text(rec.CallerContext),
		Status:        string(rec.Status),
		Result:        rec.Result,
		CreatedAt:     timestamptz(rec.CreatedAt),
		UpdatedAt:     timestamptz(rec.UpdatedAt),
		ExpiresAt:     timestamptz(rec.ExpiresAt),
		Version:       rec.Version,
	})
	if err != nil {
		return mapError(fmt.Errorf("insert idempotency record: %w", err))
	}
	return nil
}

func (s *Store) UpdateIfVersion(ctx context.Context, rec *idempotency.Record, expectedVersion int64) error {
	n, err := s.queries.UpdateIdempotencyRecordIfVersion(ctx, idempotencykeys.UpdateIdempotencyRecordIfVersionParams{
		OperationType: rec.OperationType,
		OperationKey:  rec.OperationKey,
		Status:        string(rec.Status),
		Result:        rec.Result,
		UpdatedAt:     timestamptz(rec.UpdatedAt),
		Version:       expectedVersion,
	})
	if err != nil {
		return mapError(fmt.Errorf("update idempotency record: %w", err))
	}
	if n == 0 {
		return idempotency.ErrVersionConflict
	}
	rec.Version = expectedVersion + 1
	return nil
}

func (s *Store) DeleteIfVersion(ctx context.Context, operationType, operationKey string, expectedVersion int64) error {
	n, err := s.queries.DeleteIdempotencyRecordIfVersion(ctx, idempotencykeys.DeleteIdempotencyRecordIfVersionParams{
		OperationType: operationType,
		OperationKey:  operationKey,
		Version:       expectedVersion,
	})
	if err != nil {
		return mapError(fmt.Errorf("delete idempotency record: %w", err))
	}
	if n == 0 {
		return idempotency.ErrVersionConflict
	}
	return nil
}

func (s *Store) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	n, err := s.queries.DeleteExpiredIdempotencyRecords(ctx, timestamptz(t))
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency records: %w", err)
	}
	return n, nil
}

func (s *Store) FindStuckProcessing(ctx context.Context, olderThan time.Time, limit int) ([]idempotency.Record, error) {
	rows, err := s.queries.ListStuckProcessingRecords(ctx, idempotencykeys.ListStuckProcessingRecordsParams{
		CreatedAt: timestamptz(olderThan),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list stuck idempotency records: %w", err)
	}
	return convertDBRecordsToModel(rows), nil
}

func (s *Store) CountByStatus(ctx context.Context, status idempotency.Status) (int64, error) {
	n, err := s.queries.CountIdempotencyRecordsByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("count idempotency records: %w", err)
	}
	return n, nil
}

func (s *Store) FindByCallerContext(ctx context.Context, callerContext string) ([]idempotency.Record, error) {
	rows, err := s.queries.ListIdempotencyRecordsByCallerContext(ctx, text(callerContext))
	if err != nil {
		return nil, fmt.Errorf("list idempotency records by caller context: %w", err)
	}
	return convertDBRecordsToModel(rows), nil
}

// mapError translates uniqueness violations and serialization failures into the
// store signals the coordinator retries on.
func mapError(err error) error {
	var e *pgconn.PgError
	if !errors.As(err, &e) {
		return err
	}
	switch e.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", idempotency.ErrDuplicateKey, e.ConstraintName)
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("%w: %s", idempotency.ErrVersionConflict, e.Message)
	}
	return err
}

func convertDBRecordsToModel(rows []idempotencykeys.IdempotencyRecord) []idempotency.Record {
	records := make([]idempotency.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, convertDBRecordToModel(row))
	}
	return records
}

// convertDBRecordToModel converts a database row to an idempotency.Record
func convertDBRecordToModel(row idempotencykeys.IdempotencyRecord) idempotency.Record {
	rec := idempotency.Record{
		OperationType: row.OperationType,
		OperationKey:  row.OperationKey,
		Status:        idempotency.Status(row.Status),
		Result:        row.Result,
		CreatedAt:     row.CreatedAt.Time.UTC(),
		UpdatedAt:     row.UpdatedAt.Time.UTC(),
		ExpiresAt:     row.ExpiresAt.Time.UTC(),
		Version:       row.Version,
	}
	if row.ID.Valid {
		rec.ID = uuid.UUID(row.ID.Bytes).String()
	}
	if row.CallerContext.Valid {
		rec.CallerContext = row.CallerContext.String
	}
	return rec
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
