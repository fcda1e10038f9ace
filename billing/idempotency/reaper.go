package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facebookgo/clock"
	"go.temporal.io/sdk/log"
	"golang.org/x/sync/errgroup"
)

// Reaper removes expired records and reclaims records stuck in processing.
// It runs outside the request path, on a schedule or on demand.
type Reaper struct {
	store   Store
	cfg     Config
	clock   clock.Clock
	logger  log.Logger
	metrics *metrics
}

// NewReaper builds a standalone Reaper, e.g. for an admin tool that never executes
// operations itself.
func NewReaper(store Store, cfg Config, opts ...Option) (*Reaper, error) {
	if store == nil {
		return nil, errors.New("idempotency: store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	m, err := newMetrics(o.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, fmt.Errorf("idempotency: init metrics: %w", err)
	}
	return newReaper(store, cfg, o, m), nil
}

func newReaper(store Store, cfg Config, o options, m *metrics) *Reaper {
	return &Reaper{
		store:   store,
		cfg:     cfg,
		clock:   o.clock,
		logger:  o.logger,
		metrics: m,
	}
}

// CleanupExpiredKeys deletes every record whose expiry has passed, whatever its status,
// and returns how many were removed.
func (r *Reaper) CleanupExpiredKeys(ctx context.Context) (int64, error) {
	now := r.clock.Now().UTC()
	n, err := r.store.DeleteExpiredBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency records: %w", err)
	}
	r.metrics.recordReaped(ctx, "expired", n)
	if n > 0 {
		r.logger.Info("Deleted expired idempotency records", "count", n)
	}
	return n, nil
}

// CleanupStuckKeys moves processing records created more than timeout ago to failed,
// making their keys eligible for a fresh attempt. A non-positive timeout uses the
// configured StuckTimeout. Records are scanned ReapBatchSize at a time until none are
// left.
//
// Each record is updated with its observed version; a record that completes between the
// scan and the update is left alone.
func (r *Reaper) CleanupStuckKeys(ctx context.Context, timeout time.Duration) (int64, error) {
	if timeout <= 0 {
		timeout = r.cfg.StuckTimeout
	}
	now := r.clock.Now().UTC()
	cutoff := now.Add(-timeout)

	var reclaimed int64
	defer func() { r.metrics.recordReaped(ctx, "stuck", reclaimed) }()

	for {
		stuck, err := r.store.FindStuckProcessing(ctx, cutoff, r.cfg.ReapBatchSize)
		if err != nil {
			return reclaimed, fmt.Errorf("find stuck idempotency records: %w", err)
		}

		n, err := r.reclaim(ctx, stuck, now)
		reclaimed += n
		if err != nil {
			return reclaimed, err
		}
		// A short batch is the last one. A batch with nothing reclaimed only held
		// records that changed under us, and scanning again would return them again.
		if len(stuck) < r.cfg.ReapBatchSize || n == 0 {
			return reclaimed, nil
		}
		if err := ctx.Err(); err != nil {
			return reclaimed, err
		}
	}
}

func (r *Reaper) reclaim(ctx context.Context, stuck []Record, now time.Time) (int64, error) {
	var reclaimed int64
	for i := range stuck {
		rec := stuck[i]
		failed := rec
		failed.Status = StatusFailed
		failed.Result = nil
		failed.UpdatedAt = now

		err := r.store.InTx(ctx, func(tx KeyStore) error {
			return tx.UpdateIfVersion(ctx, &failed, rec.Version)
		})
		if errors.Is(err, ErrVersionConflict) {
			r.logger.Debug("Stuck record changed before reclaim, skipping",
				"operation_type", rec.OperationType, "operation_key", rec.OperationKey)
			continue
		}
		if err != nil {
			return reclaimed, fmt.Errorf("reclaim stuck record %s/%s: %w", rec.OperationType, rec.OperationKey, err)
		}

		reclaimed++
		r.logger.Warn("Reclaimed stuck idempotency record",
			"operation_type", rec.OperationType, "operation_key", rec.OperationKey,
			"caller_context", rec.CallerContext, "created_at", rec.CreatedAt)
	}
	return reclaimed, nil
}

// RunOnce performs both duties concurrently and returns their counts.
func (r *Reaper) RunOnce(ctx context.Context) (expired, stuck int64, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.CleanupExpiredKeys(gctx)
		expired = n
		return err
	})
	g.Go(func() error {
		n, err := r.CleanupStuckKeys(gctx, r.cfg.StuckTimeout)
		stuck = n
		return err
	})
	err = g.Wait()
	return expired, stuck, err
}

// Run ticks every ReapInterval until ctx is cancelled. Failures are logged and the
// loop continues on the next tick.
func (r *Reaper) Run(ctx context.Context) {
	ticker := r.clock.Ticker(r.cfg.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, stuck, err := r.RunOnce(ctx)
			if err != nil {
				r.logger.Error("Reaper cycle failed", "error", err)
				continue
			}
			r.logger.Debug("Reaper cycle finished", "expired", expired, "stuck", stuck)
		}
	}
}
