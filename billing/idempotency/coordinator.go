package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/log"
)

// finalizeTimeout bounds the status write after an operation returns. The write runs
// detached from the caller's cancellation so a cancelled caller cannot strand a record
// in processing.
const finalizeTimeout = 10 * time.Second

// Coordinator runs side-effecting operations at most once per (operation type, key).
//
// All coordination goes through the Store: no in-process lock is taken, so any number
// of processes sharing the same database can use their own Coordinator.
type Coordinator struct {
	store      Store
	serializer Serializer
	cfg        Config
	clock      clock.Clock
	logger     log.Logger
	tracer     trace.Tracer
	metrics    *metrics
	reaper     *Reaper
}

type options struct {
	clock          clock.Clock
	logger         log.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// Option customises a Coordinator or Reaper.
type Option func(*options)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the key/value logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeterProvider sets the OpenTelemetry meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider sets the OpenTelemetry tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:          clock.New(),
		logger:         nopLogger{},
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCoordinator builds a Coordinator over store. A nil serializer means JSON.
func NewCoordinator(store Store, serializer Serializer, cfg Config, opts ...Option) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("idempotency: store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if serializer == nil {
		serializer = JSONSerializer{}
	}

	o := buildOptions(opts)
	m, err := newMetrics(o.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("idempotency: init metrics: %w", err)
	}

	return &Coordinator{
		store:      store,
		serializer: serializer,
		cfg:        cfg,
		clock:      o.clock,
		logger:     o.logger,
		tracer:     o.tracerProvider.Tracer(instrumentationName),
		metrics:    m,
		reaper:     newReaper(store, cfg, o, m),
	}, nil
}

// Reaper returns the maintenance worker sharing this coordinator's store and config.
func (c *Coordinator) Reaper() *Reaper {
	return c.reaper
}

// Execute runs op at most once for (operationType, operationKey) and returns its result.
//
// A completed key returns the stored result without calling op. A key currently being
// processed elsewhere fails with ErrConcurrentExecution; the coordinator never waits for
// the other attempt. A failed key is retried. If op returns an error the record is marked
// failed and that same error is returned, unwrapped.
//
// Fresh and cached results are both decoded from their serialized form, so callers
// cannot tell them apart.
func Execute[T any](ctx context.Context, c *Coordinator, operationType, operationKey string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	raw, err := c.ExecuteRaw(ctx, operationType, operationKey, func(ctx context.Context) ([]byte, error) {
		v, err := op(ctx)
		if err != nil {
			return nil, err
		}
		data, err := c.serializer.Marshal(v)
		if err != nil {
			return nil, newError(KindSerialization, operationType, operationKey, "encode result", err)
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := c.serializer.Unmarshal(raw, &out); err != nil {
		return zero, newError(KindSerialization, operationType, operationKey, "decode stored result", err)
	}
	return out, nil
}

// ExecuteRaw is Execute for operations that produce their serialized result directly.
func (c *Coordinator) ExecuteRaw(ctx context.Context, operationType, operationKey string, op func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if err := ValidateKey(operationType, operationKey); err != nil {
		return nil, withOperation(err, operationType, operationKey)
	}

	ctx, span := c.tracer.Start(ctx, "idempotency.Execute", trace.WithAttributes(
		attribute.String("idempotency.operation_type", operationType),
		attribute.String("idempotency.operation_key", operationKey),
	))
	defer span.End()

	claimed, err := c.claim(ctx, operationType, operationKey)
	if err != nil {
		c.metrics.recordOutcome(ctx, operationType, outcomeFor(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if claimed.cached != nil {
		c.logger.Debug("Returning stored result", "operation_type", operationType, "operation_key", operationKey)
		c.metrics.recordOutcome(ctx, operationType, outcomeCached)
		span.SetAttributes(attribute.Bool("idempotency.cached", true))
		return claimed.cached.Result, nil
	}

	started := c.clock.Now()
	result, opErr := c.run(ctx, claimed.record, op)
	c.metrics.recordDuration(ctx, operationType, c.clock.Now().Sub(started))

	if opErr != nil {
		c.markFailed(ctx, claimed.record, opErr)
		c.metrics.recordOutcome(ctx, operationType, outcomeOperationFailed)
		span.RecordError(opErr)
		span.SetStatus(codes.Error, opErr.Error())
		return nil, opErr
	}

	if err := c.markCompleted(ctx, claimed.record, result); err != nil {
		c.metrics.recordOutcome(ctx, operationType, outcomeFor(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.metrics.recordOutcome(ctx, operationType, outcomeExecuted)
	return result, nil
}

type claimResult struct {
	record *Record // newly inserted processing record owned by this call
	cached *Record // completed record found instead
}

// claim either finds a completed record or inserts a processing one, retrying the whole
// lookup on storage conflicts.
func (c *Coordinator) claim(ctx context.Context, operationType, operationKey string) (claimResult, error) {
	attempts := 0
	res, err := backoff.Retry(ctx, func() (claimResult, error) {
		attempts++
		res, err := c.tryClaim(ctx, operationType, operationKey)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ErrStorageConflict) {
			c.metrics.recordConflict(ctx, operationType)
			c.logger.Debug("Storage conflict while claiming key", "operation_type", operationType, "operation_key", operationKey, "attempt", attempts, "error", err)
			return claimResult{}, err
		}
		return claimResult{}, backoff.Permanent(err)
	}, backoff.WithBackOff(c.newBackOff()), backoff.WithMaxTries(uint(c.cfg.MaxAttempts)))
	if err != nil {
		if errors.Is(err, ErrStorageConflict) {
			c.logger.Warn("Retries exhausted while claiming key", "operation_type", operationType, "operation_key", operationKey, "attempts", attempts)
			return claimResult{}, newError(KindMaxRetriesExceeded, operationType, operationKey,
				fmt.Sprintf("storage conflicts persisted after %d attempts", attempts), err)
		}
		return claimResult{}, err
	}
	return res, nil
}

func (c *Coordinator) tryClaim(ctx context.Context, operationType, operationKey string) (claimResult, error) {
	var res claimResult
	err := c.store.InTx(ctx, func(tx KeyStore) error {
		existing, err := tx.Find(ctx, operationType, operationKey)
		if err != nil {
			return fmt.Errorf("find idempotency record: %w", err)
		}

		if existing != nil {
			switch existing.Status {
			case StatusCompleted:
				res.cached = existing
				return nil
			case StatusFailed:
				// A failed attempt never blocks a retry; it is replaced by a fresh record.
				if err := tx.DeleteIfVersion(ctx, operationType, operationKey, existing.Version); err != nil {
					return storageError(err, operationType, operationKey)
				}
			default:
				return newError(KindConcurrentExecution, operationType, operationKey,
					"operation is already in progress", nil)
			}
		}

		now := c.clock.Now().UTC()
		rec := &Record{
			ID:            uuid.NewString(),
			OperationType: operationType,
			OperationKey:  operationKey,
			CallerContext: CallerContextFrom(ctx),
			Status:        StatusProcessing,
			CreatedAt:     now,
			UpdatedAt:     now,
			ExpiresAt:     now.Add(c.cfg.RecordTTL),
			Version:       1,
		}
		if err := tx.Insert(ctx, rec); err != nil {
			return storageError(err, operationType, operationKey)
		}
		res.record = rec
		return nil
	})
	return res, err
}

// run calls op. A panicking op releases the key for retry before the panic continues.
func (c *Coordinator) run(ctx context.Context, rec *Record, op func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("Operation panicked",
				"operation_type", rec.OperationType, "operation_key", rec.OperationKey, "panic", p)
			c.markFailed(ctx, rec, fmt.Errorf("operation panicked: %v", p))
			c.metrics.recordOutcome(ctx, rec.OperationType, outcomeOperationFailed)
			panic(p)
		}
	}()
	return op(ctx)
}

func (c *Coordinator) markCompleted(ctx context.Context, rec *Record, result []byte) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()

	done := *rec
	done.Status = StatusCompleted
	done.Result = result
	done.UpdatedAt = c.clock.Now().UTC()

	err := c.store.InTx(ctx, func(tx KeyStore) error {
		return tx.UpdateIfVersion(ctx, &done, rec.Version)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrVersionConflict) {
		// The record changed under a running operation (for example it was reaped as
		// stuck). Overwriting it would hide that, so the call fails instead.
		c.logger.Error("Idempotency record changed while operation ran",
			"operation_type", rec.OperationType, "operation_key", rec.OperationKey, "version", rec.Version)
		return newError(KindMaxRetriesExceeded, rec.OperationType, rec.OperationKey,
			"record was modified while the operation was running",
			storageError(err, rec.OperationType, rec.OperationKey))
	}

	c.logger.Error("Failed to store completed result",
		"operation_type", rec.OperationType, "operation_key", rec.OperationKey, "error", err)
	return fmt.Errorf("store completed result for %s/%s: %w", rec.OperationType, rec.OperationKey, err)
}

// markFailed is best effort: a failure here is logged and never replaces opErr.
func (c *Coordinator) markFailed(ctx context.Context, rec *Record, opErr error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()

	failed := *rec
	failed.Status = StatusFailed
	failed.Result = nil
	failed.UpdatedAt = c.clock.Now().UTC()

	err := c.store.InTx(ctx, func(tx KeyStore) error {
		return tx.UpdateIfVersion(ctx, &failed, rec.Version)
	})
	if err != nil {
		c.logger.Error("Failed to mark idempotency record as failed",
			"operation_type", rec.OperationType, "operation_key", rec.OperationKey,
			"operation_error", opErr, "error", err)
		return
	}
	c.logger.Info("Operation failed, key released for retry",
		"operation_type", rec.OperationType, "operation_key", rec.OperationKey, "error", opErr)
}

// GetStoredResult returns the serialized result of a completed operation.
// The boolean is false when the key has no completed record.
func (c *Coordinator) GetStoredResult(ctx context.Context, operationType, operationKey string) ([]byte, bool, error) {
	if err := ValidateKey(operationType, operationKey); err != nil {
		return nil, false, withOperation(err, operationType, operationKey)
	}

	rec, err := c.store.Find(ctx, operationType, operationKey)
	if err != nil {
		return nil, false, fmt.Errorf("find idempotency record: %w", err)
	}
	if rec == nil || rec.Status != StatusCompleted {
		return nil, false, nil
	}
	return rec.Result, true, nil
}

// Lookup returns the record for a key regardless of its status, or nil.
func (c *Coordinator) Lookup(ctx context.Context, operationType, operationKey string) (*Record, error) {
	if err := ValidateKey(operationType, operationKey); err != nil {
		return nil, withOperation(err, operationType, operationKey)
	}
	rec, err := c.store.Find(ctx, operationType, operationKey)
	if err != nil {
		return nil, fmt.Errorf("find idempotency record: %w", err)
	}
	return rec, nil
}

// StoreResult records a completed result for an operation executed outside Execute, so
// later Execute calls for the same key return it instead of running again.
func (c *Coordinator) StoreResult(ctx context.Context, operationType, operationKey string, result any) error {
	if err := ValidateKey(operationType, operationKey); err != nil {
		return withOperation(err, operationType, operationKey)
	}

	data, err := c.serializer.Marshal(result)
	if err != nil {
		return newError(KindSerialization, operationType, operationKey, "encode result", err)
	}

	attempts := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		err := c.store.InTx(ctx, func(tx KeyStore) error {
			existing, err := tx.Find(ctx, operationType, operationKey)
			if err != nil {
				return fmt.Errorf("find idempotency record: %w", err)
			}
			if existing != nil {
				switch existing.Status {
				case StatusCompleted:
					return newError(KindAlreadyCompleted, operationType, operationKey,
						"a completed result is already stored", nil)
				case StatusFailed:
					if err := tx.DeleteIfVersion(ctx, operationType, operationKey, existing.Version); err != nil {
						return storageError(err, operationType, operationKey)
					}
				default:
					return newError(KindConcurrentExecution, operationType, operationKey,
						"operation is already in progress", nil)
				}
			}

			now := c.clock.Now().UTC()
			rec := &Record{
				ID:            uuid.NewString(),
				OperationType: operationType,
				OperationKey:  operationKey,
				CallerContext: CallerContextFrom(ctx),
				Status:        StatusCompleted,
				Result:        data,
				CreatedAt:     now,
				UpdatedAt:     now,
				ExpiresAt:     now.Add(c.cfg.RecordTTL),
				Version:       1,
			}
			if err := tx.Insert(ctx, rec); err != nil {
				return storageError(err, operationType, operationKey)
			}
			return nil
		})
		if err != nil && !errors.Is(err, ErrStorageConflict) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(c.newBackOff()), backoff.WithMaxTries(uint(c.cfg.MaxAttempts)))
	if err != nil {
		if errors.Is(err, ErrStorageConflict) {
			return newError(KindMaxRetriesExceeded, operationType, operationKey,
				fmt.Sprintf("storage conflicts persisted after %d attempts", attempts), err)
		}
		return err
	}

	c.logger.Info("Stored result recorded manually", "operation_type", operationType, "operation_key", operationKey)
	return nil
}

// CleanupExpiredKeys deletes every record past its expiry. See Reaper.CleanupExpiredKeys.
func (c *Coordinator) CleanupExpiredKeys(ctx context.Context) (int64, error) {
	return c.reaper.CleanupExpiredKeys(ctx)
}

// CleanupStuckKeys reclaims processing records older than timeout. A non-positive
// timeout uses the configured StuckTimeout.
func (c *Coordinator) CleanupStuckKeys(ctx context.Context, timeout time.Duration) (int64, error) {
	return c.reaper.CleanupStuckKeys(ctx, timeout)
}

// CountByStatus reports how many records are in each status.
func (c *Coordinator) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	counts := make(map[Status]int64, len(Statuses))
	for _, s := range Statuses {
		n, err := c.store.CountByStatus(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("count %s records: %w", s, err)
		}
		counts[s] = n
	}
	return counts, nil
}

// FindByCallerContext lists the records created on behalf of one caller.
func (c *Coordinator) FindByCallerContext(ctx context.Context, callerContext string) ([]Record, error) {
	if callerContext == "" {
		return nil, validationError("caller context is required")
	}
	return c.store.FindByCallerContext(ctx, callerContext)
}

func (c *Coordinator) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff
	b.MaxInterval = c.cfg.MaxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0.2
	b.Reset()
	return b
}

func storageError(err error, operationType, operationKey string) error {
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrVersionConflict) {
		return newError(KindStorageConflict, operationType, operationKey, "", err)
	}
	return fmt.Errorf("idempotency store: %w", err)
}

func withOperation(err error, operationType, operationKey string) error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.OperationType = operationType
		cp.OperationKey = operationKey
		return &cp
	}
	return err
}

func outcomeFor(err error) string {
	switch KindOf(err) {
	case KindConcurrentExecution:
		return outcomeConcurrent
	case KindMaxRetriesExceeded:
		return outcomeRetriesExhausted
	default:
		return outcomeError
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
