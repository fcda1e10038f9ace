package idempotency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func newTestCoordinator(t *testing.T, store Store, opts ...Option) (*Coordinator, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	mock.Add(1000 * time.Hour)
	c, err := NewCoordinator(store, nil, testConfig(), append([]Option{WithClock(mock)}, opts...)...)
	require.NoError(t, err)
	return c, mock
}

type payment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

func TestExecute_RunsOperationOnce(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)
	ctx := context.Background()

	var calls int
	op := func(ctx context.Context) (payment, error) {
		calls++
		return payment{ID: fmt.Sprintf("PAY-%d", calls), Amount: 100}, nil
	}

	first, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)
	second, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "PAY-1", second.ID)

	rec, err := store.Find(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, StatusCompleted, rec.Status)
	assert.Equal(t, int64(2), rec.Version)
	assert.JSONEq(t, `{"id":"PAY-1","amount":100}`, string(rec.Result))
}

func TestExecute_OperationTypesAreIndependent(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	var calls int
	op := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	a, err := Execute(ctx, c, "PAYMENT", "same-key", op)
	require.NoError(t, err)
	b, err := Execute(ctx, c, "CLAIM_GENERATION", "same-key", op)
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestExecute_ClaimGenerationScenario(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	var claimSeq int
	genClaim := func(ctx context.Context) (string, error) {
		claimSeq++
		return fmt.Sprintf("CLM-%d", claimSeq), nil
	}

	k1, err := DeriveKey("patient:P1", "auth:AUTH100", "charges:250.0")
	require.NoError(t, err)
	k2, err := DeriveKey("patient:P1", "auth:AUTH100", "charges:250.0")
	require.NoError(t, err)
	require.Equal(t, k1, k2)

	first, err := Execute(ctx, c, "CLAIM_GENERATION", k1, genClaim)
	require.NoError(t, err)
	second, err := Execute(ctx, c, "CLAIM_GENERATION", k2, genClaim)
	require.NoError(t, err)

	assert.Equal(t, "CLM-1", first)
	assert.Equal(t, "CLM-1", second)
	assert.Equal(t, 1, claimSeq)
}

func TestExecute_FailureIsRetryable(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)
	ctx := context.Background()

	boom := errors.New("gateway timeout")
	var calls int
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}

	_, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.Error(t, err)
	assert.Same(t, boom, err, "operation errors must be returned unchanged")

	rec, err := store.Find(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, rec.Status)
	assert.Nil(t, rec.Result)

	result, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)

	rec, err = store.Find(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Status)
}

func TestExecute_PanicReleasesKey(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = Execute(ctx, c, "PAYMENT", "kp", func(ctx context.Context) (payment, error) {
			panic("boom")
		})
	})

	rec, err := store.Find(ctx, "PAYMENT", "kp")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, StatusFailed, rec.Status)

	got, err := Execute(ctx, c, "PAYMENT", "kp", func(ctx context.Context) (payment, error) {
		return payment{ID: "PAY-2", Amount: 10}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "PAY-2", got.ID)
}

func TestExecute_ConcurrentCallerSeesInProgress(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	op := func(ctx context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		return "CLM-1", nil
	}

	var wg sync.WaitGroup
	var firstResult string
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstResult, firstErr = Execute(ctx, c, "CLAIM_GENERATION", "k1", op)
	}()

	<-started
	_, err := Execute(ctx, c, "CLAIM_GENERATION", "k1", op)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConcurrentExecution)

	var idemErr *Error
	require.ErrorAs(t, err, &idemErr)
	assert.Equal(t, "CLAIM_GENERATION", idemErr.OperationType)
	assert.Equal(t, "k1", idemErr.OperationKey)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, "CLM-1", firstResult)

	cached, err := Execute(ctx, c, "CLAIM_GENERATION", "k1", op)
	require.NoError(t, err)
	assert.Equal(t, "CLM-1", cached)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecute_ManyConcurrentCallersRunOnce(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	var calls atomic.Int32
	op := func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return fmt.Sprintf("PAY-%d", n), nil
	}

	const callers = 32
	results := make([]string, callers)
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			res, err := Execute(ctx, c, "PAYMENT", "shared", op)
			if err != nil {
				if errors.Is(err, ErrConcurrentExecution) {
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		if r != "" {
			assert.Equal(t, "PAY-1", r)
		}
	}
}

// conflictStore injects storage conflicts into an otherwise working MemoryStore.
type conflictStore struct {
	*MemoryStore
	insertConflicts  atomic.Int32
	completeConflict bool
	failUpdates      error
}

func (s *conflictStore) InTx(ctx context.Context, fn func(tx KeyStore) error) error {
	return fn(s)
}

func (s *conflictStore) Insert(ctx context.Context, rec *Record) error {
	if s.insertConflicts.Load() > 0 {
		s.insertConflicts.Add(-1)
		return ErrDuplicateKey
	}
	return s.MemoryStore.Insert(ctx, rec)
}

func (s *conflictStore) UpdateIfVersion(ctx context.Context, rec *Record, expectedVersion int64) error {
	if s.completeConflict && rec.Status == StatusCompleted {
		return ErrVersionConflict
	}
	if s.failUpdates != nil {
		return s.failUpdates
	}
	return s.MemoryStore.UpdateIfVersion(ctx, rec, expectedVersion)
}

func TestExecute_RetriesStorageConflicts(t *testing.T) {
	store := &conflictStore{MemoryStore: NewMemoryStore()}
	store.insertConflicts.Store(2)
	c, _ := newTestCoordinator(t, store)

	var calls int
	result, err := Execute(context.Background(), c, "PAYMENT", "k1", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 1, calls)
}

func TestExecute_MaxRetriesExceeded(t *testing.T) {
	store := &conflictStore{MemoryStore: NewMemoryStore()}
	store.insertConflicts.Store(100)
	c, _ := newTestCoordinator(t, store)

	var calls int
	_, err := Execute(context.Background(), c, "PAYMENT", "k1", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 0, calls)
	assert.Equal(t, int32(100-testConfig().MaxAttempts), store.insertConflicts.Load())

	var idemErr *Error
	require.ErrorAs(t, err, &idemErr)
	assert.Equal(t, "PAYMENT", idemErr.OperationType)
	assert.Equal(t, "k1", idemErr.OperationKey)
}

func TestExecute_VersionConflictOnCompletionIsNotOverwritten(t *testing.T) {
	store := &conflictStore{MemoryStore: NewMemoryStore(), completeConflict: true}
	c, _ := newTestCoordinator(t, store)

	var calls int
	_, err := Execute(context.Background(), c, "PAYMENT", "k1", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, 1, calls, "operation must never be re-run after a completion conflict")

	rec, err := store.Find(context.Background(), "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, rec.Status)
	assert.Nil(t, rec.Result)
}

func TestExecute_FailedMarkDoesNotMaskOperationError(t *testing.T) {
	store := &conflictStore{MemoryStore: NewMemoryStore(), failUpdates: errors.New("db down")}
	c, _ := newTestCoordinator(t, store)

	opErr := errors.New("card declined")
	_, err := Execute(context.Background(), c, "PAYMENT", "k1", func(ctx context.Context) (int, error) {
		return 0, opErr
	})

	assert.Same(t, opErr, err)
}

func TestExecute_SerializationError(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)

	_, err := Execute(context.Background(), c, "PAYMENT", "k1", func(ctx context.Context) (chan int, error) {
		return make(chan int), nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)

	rec, err := store.Find(context.Background(), "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, rec.Status)
}

func TestExecute_DecodeErrorOnStoredResult(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)
	ctx := context.Background()

	require.NoError(t, c.StoreResult(ctx, "PAYMENT", "k1", "not-a-number"))

	_, err := Execute(ctx, c, "PAYMENT", "k1", func(ctx context.Context) (int, error) {
		t.Fatal("operation must not run for a completed key")
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestExecute_ValidationError(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())

	_, err := Execute(context.Background(), c, "PAYMENT", "", func(ctx context.Context) (int, error) {
		t.Fatal("operation must not run without a key")
		return 0, nil
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestExecute_RecordsCallerContextAndExpiry(t *testing.T) {
	store := NewMemoryStore()
	c, mock := newTestCoordinator(t, store)
	ctx := WithCallerContext(context.Background(), "workflow:patient-billing-E1")

	_, err := Execute(ctx, c, "PAYMENT", "k1", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	rec, err := store.Find(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, "workflow:patient-billing-E1", rec.CallerContext)
	assert.Equal(t, mock.Now().UTC(), rec.CreatedAt)
	assert.Equal(t, rec.CreatedAt.Add(24*time.Hour), rec.ExpiresAt)
	assert.NotEmpty(t, rec.ID)

	records, err := c.FindByCallerContext(ctx, "workflow:patient-billing-E1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExecute_CancelledCallerStillFinalizes(t *testing.T) {
	store := NewMemoryStore()
	c, _ := newTestCoordinator(t, store)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := Execute(ctx, c, "PAYMENT", "k1", func(ctx context.Context) (string, error) {
		cancel()
		return "charged", nil
	})
	require.NoError(t, err)

	rec, err := store.Find(context.Background(), "PAYMENT", "k1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Status)
}

func TestGetStoredResult(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	_, ok, err := c.GetStoredResult(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Execute(ctx, c, "PAYMENT", "k1", func(ctx context.Context) (payment, error) {
		return payment{ID: "PAY-9", Amount: 12.5}, nil
	})
	require.NoError(t, err)

	raw, ok, err := c.GetStoredResult(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"PAY-9","amount":12.5}`, string(raw))
}

func TestStoreResult(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, c.StoreResult(ctx, "CLAIM_GENERATION", "manual", "CLM-77"))

	result, err := Execute(ctx, c, "CLAIM_GENERATION", "manual", func(ctx context.Context) (string, error) {
		t.Fatal("manually stored key must not execute")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "CLM-77", result)

	err = c.StoreResult(ctx, "CLAIM_GENERATION", "manual", "CLM-78")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestStoreResult_ReplacesFailedRecord(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	_, err := Execute(ctx, c, "PAYMENT", "k1", func(ctx context.Context) (string, error) {
		return "", errors.New("declined")
	})
	require.Error(t, err)

	require.NoError(t, c.StoreResult(ctx, "PAYMENT", "k1", "PAY-manual"))

	raw, ok, err := c.GetStoredResult(ctx, "PAYMENT", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"PAY-manual"`, string(raw))
}

func TestCountByStatus(t *testing.T) {
	c, _ := newTestCoordinator(t, NewMemoryStore())
	ctx := context.Background()

	_, err := Execute(ctx, c, "PAYMENT", "ok", func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	_, err = Execute(ctx, c, "PAYMENT", "bad", func(ctx context.Context) (int, error) { return 0, errors.New("x") })
	require.Error(t, err)

	counts, err := c.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[StatusCompleted])
	assert.Equal(t, int64(1), counts[StatusFailed])
	assert.Equal(t, int64(0), counts[StatusProcessing])
}

func TestExecute_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	c, _ := newTestCoordinator(t, NewMemoryStore(), WithMeterProvider(mp))
	ctx := context.Background()

	op := func(ctx context.Context) (int, error) { return 1, nil }
	_, err := Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)
	_, err = Execute(ctx, c, "PAYMENT", "k1", op)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "idempotency.executions" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				outcomes[v.AsString()] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(1), outcomes[outcomeExecuted])
	assert.Equal(t, int64(1), outcomes[outcomeCached])
}

func TestNewCoordinator_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 0

	_, err := NewCoordinator(NewMemoryStore(), nil, cfg)
	assert.Error(t, err)

	_, err = NewCoordinator(nil, nil, DefaultConfig())
	assert.Error(t, err)
}
