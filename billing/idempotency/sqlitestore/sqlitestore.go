// Package sqlitestore implements idempotency.Store on a local SQLite database. It backs
// the admin CLI and single-node deployments.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

//go:embed schema.sql
var schemaSQL string

const recordColumns = `id, operation_type, operation_key, caller_context, status, result,
	created_at, updated_at, expires_at, version`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a SQLite backed idempotency.Store.
type Store struct {
	db *sql.DB
	q  queryer
}

var _ idempotency.Store = (*Store)(nil)

// Open creates or opens the database at path and applies the schema.
//
// Transactions take the write lock up front (_txlock=immediate) so two processes
// sharing the file cannot both pass the lookup before inserting.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db, q: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) InTx(ctx context.Context, fn func(tx idempotency.KeyStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(fmt.Errorf("begin transaction: %w", err))
	}
	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *Store) Find(ctx context.Context, operationType, operationKey string) (*idempotency.Record, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM idempotency_records WHERE operation_type = ? AND operation_key = ?`,
		operationType, operationKey)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	return &rec, nil
}

func (s *Store) Insert(ctx context.Context, rec *idempotency.Record) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO idempotency_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OperationType, rec.OperationKey, nullString(rec.CallerContext), string(rec.Status),
		rec.Result, rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano(), rec.ExpiresAt.UnixNano(), rec.Version)
	if err != nil {
		return mapError(fmt.Errorf("insert idempotency record: %w", err))
	}
	return nil
}

func (s *Store) UpdateIfVersion(ctx context.Context, rec *idempotency.Record, expectedVersion int64) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE idempotency_records
		SET status = ?, result = ?, updated_at = ?, version = version + 1
		WHERE operation_type = ? AND operation_key = ? AND version = ?`,
		string(rec.Status), rec.Result, rec.UpdatedAt.UnixNano(),
		rec.OperationType, rec.OperationKey, expectedVersion)
	if err != nil {
		return mapError(fmt.Errorf("update idempotency record: %w", err))
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	rec.Version = expectedVersion + 1
	return nil
}

func (s *Store) DeleteIfVersion(ctx context.Context, operationType, operationKey string, expectedVersion int64) error {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM idempotency_records WHERE operation_type = ? AND operation_key = ? AND version = ?`,
		operationType, operationKey, expectedVersion)
	if err != nil {
		return mapError(fmt.Errorf("delete idempotency record: %w", err))
	}
	return expectOneRow(res)
}

func (s *Store) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM idempotency_records WHERE expires_at < ?`, t.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency records: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) FindStuckProcessing(ctx context.Context, olderThan time.Time, limit int) ([]idempotency.Record, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM idempotency_records
		WHERE status = ? AND created_at < ?
		ORDER BY created_at ASC
		LIMIT ?`,
		string(idempotency.StatusProcessing), olderThan.UnixNano(), limit)
	if err != nil {
		return nil, fmt.Errorf("list stuck idempotency records: %w", err)
	}
	return scanRecords(rows)
}

func (s *Store) CountByStatus(ctx context.Context, status idempotency.Status) (int64, error) {
	var n int64
	err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM idempotency_records WHERE status = ?`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count idempotency records: %w", err)
	}
	return n, nil
}

func (s *Store) FindByCallerContext(ctx context.Context, callerContext string) ([]idempotency.Record, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM idempotency_records WHERE caller_context = ? ORDER BY created_at ASC`,
		callerContext)
	if err != nil {
		return nil, fmt.Errorf("list idempotency records by caller context: %w", err)
	}
	return scanRecords(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (idempotency.Record, error) {
	var (
		rec                             idempotency.Record
		callerContext                   sql.NullString
		status                          string
		createdAt, updatedAt, expiresAt int64
	)
	err := row.Scan(&rec.ID, &rec.OperationType, &rec.OperationKey, &callerContext, &status, &rec.Result,
		&createdAt, &updatedAt, &expiresAt, &rec.Version)
	if err != nil {
		return idempotency.Record{}, err
	}
	rec.CallerContext = callerContext.String
	rec.Status = idempotency.Status(status)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
	rec.ExpiresAt = time.Unix(0, expiresAt).UTC()
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]idempotency.Record, error) {
	defer rows.Close()
	var records []idempotency.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return idempotency.ErrVersionConflict
	}
	return nil
}

// mapError turns constraint violations and lock contention into store signals.
func mapError(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case se.ExtendedCode == sqlite3.ErrConstraintUnique, se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %s", idempotency.ErrDuplicateKey, se.Error())
	case se.Code == sqlite3.ErrBusy, se.Code == sqlite3.ErrLocked:
		return fmt.Errorf("%w: %s", idempotency.ErrVersionConflict, se.Error())
	}
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
