package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecord(t *testing.T, store KeyStore, opType, opKey string, status Status, createdAt time.Time, ttl time.Duration) {
	t.Helper()
	require.NoError(t, store.Insert(context.Background(), &Record{
		ID:            opType + "/" + opKey,
		OperationType: opType,
		OperationKey:  opKey,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(ttl),
		Version:       1,
	}))
}

func TestCleanupExpiredKeys(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	ctx := context.Background()
	now := mock.Now().UTC()

	seedRecord(t, store, "PAYMENT", "old-completed", StatusCompleted, now.Add(-48*time.Hour), 24*time.Hour)
	seedRecord(t, store, "PAYMENT", "old-processing", StatusProcessing, now.Add(-30*time.Hour), 24*time.Hour)
	seedRecord(t, store, "PAYMENT", "fresh", StatusCompleted, now.Add(-time.Hour), 24*time.Hour)

	n, err := c.CleanupExpiredKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rec, err := store.Find(ctx, "PAYMENT", "fresh")
	require.NoError(t, err)
	assert.NotNil(t, rec, "non-expired records must be untouched")

	rec, err = store.Find(ctx, "PAYMENT", "old-completed")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCleanupExpiredKeys_NewAttemptStartsFresh(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	ctx := context.Background()

	var calls int
	op := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	mock.Add(25 * time.Hour)
	n, err := c.CleanupExpiredKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	second, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)
	assert.Equal(t, 2, second)
}

func TestCleanupStuckKeys(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	ctx := context.Background()
	now := mock.Now().UTC()

	seedRecord(t, store, "PAYMENT", "stuck", StatusProcessing, now.Add(-2*time.Hour), 24*time.Hour)
	seedRecord(t, store, "PAYMENT", "young", StatusProcessing, now.Add(-10*time.Minute), 24*time.Hour)
	seedRecord(t, store, "PAYMENT", "done", StatusCompleted, now.Add(-3*time.Hour), 24*time.Hour)

	n, err := c.CleanupStuckKeys(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stuck, err := store.Find(ctx, "PAYMENT", "stuck")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, stuck.Status)
	assert.Equal(t, int64(2), stuck.Version)

	young, err := store.Find(ctx, "PAYMENT", "young")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, young.Status)

	done, err := store.Find(ctx, "PAYMENT", "done")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	// The reclaimed key is eligible for a fresh attempt.
	var calls int
	result, err := Execute(ctx, c, "PAYMENT", "stuck", func(ctx context.Context) (string, error) {
		calls++
		return "PAY-retry", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "PAY-retry", result)
	assert.Equal(t, 1, calls)
}

func TestCleanupStuckKeys_DefaultTimeoutDrainsAllBatches(t *testing.T) {
	store := NewMemoryStore()
	mock := clock.NewMock()
	mock.Add(1000 * time.Hour)
	cfg := testConfig()
	cfg.StuckTimeout = 30 * time.Minute
	cfg.ReapBatchSize = 2

	r, err := NewReaper(store, cfg, WithClock(mock))
	require.NoError(t, err)

	now := mock.Now().UTC()
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		seedRecord(t, store, "CLAIM_GENERATION", key, StatusProcessing, now.Add(-time.Hour), 24*time.Hour)
	}
	seedRecord(t, store, "CLAIM_GENERATION", "young", StatusProcessing, now.Add(-time.Minute), 24*time.Hour)

	n, err := r.CleanupStuckKeys(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n, "every stuck record is reclaimed across batches of 2")

	n, err = r.CleanupStuckKeys(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	count, err := store.CountByStatus(context.Background(), StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	count, err = store.CountByStatus(context.Background(), StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// staleScanStore keeps returning a record that no longer matches its scanned version.
type staleScanStore struct {
	*MemoryStore
	scans int
}

func (s *staleScanStore) FindStuckProcessing(ctx context.Context, olderThan time.Time, limit int) ([]Record, error) {
	s.scans++
	out := make([]Record, limit)
	for i := range out {
		out[i] = Record{OperationType: "PAYMENT", OperationKey: "gone", Status: StatusProcessing, Version: 7}
	}
	return out, nil
}

func (s *staleScanStore) InTx(ctx context.Context, fn func(tx KeyStore) error) error {
	return fn(s)
}

func TestCleanupStuckKeys_StopsWhenNothingReclaimed(t *testing.T) {
	store := &staleScanStore{MemoryStore: NewMemoryStore()}
	cfg := testConfig()
	cfg.ReapBatchSize = 2

	r, err := NewReaper(store, cfg)
	require.NoError(t, err)

	n, err := r.CleanupStuckKeys(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 1, store.scans)
}

func TestReaper_RunOnce(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	now := mock.Now().UTC()

	seedRecord(t, store, "PAYMENT", "expired", StatusCompleted, now.Add(-48*time.Hour), 24*time.Hour)
	seedRecord(t, store, "PAYMENT", "stuck", StatusProcessing, now.Add(-2*time.Hour), 24*time.Hour)

	expired, stuck, err := c.Reaper().RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, int64(1), stuck)
}

func TestReaper_RunTicks(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	now := mock.Now().UTC()

	seedRecord(t, store, "PAYMENT", "expired", StatusCompleted, now.Add(-48*time.Hour), 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Reaper().Run(ctx)
	}()

	require.Eventually(t, func() bool {
		mock.Add(testConfig().ReapInterval)
		return store.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
