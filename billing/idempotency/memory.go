package idempotency

import (
	"context"
	"sort"
	"sync"
	"time"
)

type recordKey struct {
	operationType string
	operationKey  string
}

// MemoryStore is an in-process Store for tests and single-process tooling.
// It honours the same uniqueness and version contracts as the SQL stores.
type MemoryStore struct {
	mu      sync.Mutex
	records map[recordKey]*Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[recordKey]*Record)}
}

// InTx runs fn against the store directly. Every individual operation is atomic, which
// is all the coordinator relies on; there is no rollback.
func (s *MemoryStore) InTx(ctx context.Context, fn func(tx KeyStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

func (s *MemoryStore) Find(ctx context.Context, operationType, operationKey string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordKey{operationType, operationKey}]
	if !ok {
		return nil, nil
	}
	return rec.clone(), nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{rec.OperationType, rec.OperationKey}
	if _, exists := s.records[k]; exists {
		return ErrDuplicateKey
	}
	s.records[k] = rec.clone()
	return nil
}

func (s *MemoryStore) UpdateIfVersion(ctx context.Context, rec *Record, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{rec.OperationType, rec.OperationKey}
	current, ok := s.records[k]
	if !ok || current.Version != expectedVersion {
		return ErrVersionConflict
	}
	updated := rec.clone()
	updated.ID = current.ID
	updated.Version = expectedVersion + 1
	s.records[k] = updated
	return nil
}

func (s *MemoryStore) DeleteIfVersion(ctx context.Context, operationType, operationKey string, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{operationType, operationKey}
	current, ok := s.records[k]
	if !ok || current.Version != expectedVersion {
		return ErrVersionConflict
	}
	delete(s.records, k)
	return nil
}

func (s *MemoryStore) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, rec := range s.records {
		if rec.Expired(t) {
			delete(s.records, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) FindStuckProcessing(ctx context.Context, olderThan time.Time, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, rec := range s.records {
		if rec.Status == StatusProcessing && rec.CreatedAt.Before(olderThan) {
			out = append(out, *rec.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, rec := range s.records {
		if rec.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) FindByCallerContext(ctx context.Context, callerContext string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, rec := range s.records {
		if rec.CallerContext == callerContext {
			out = append(out, *rec.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

var _ Store = (*MemoryStore)(nil)
