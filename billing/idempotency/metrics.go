package idempotency

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/carelane/hospital-billing/billing/idempotency"

// Execution outcomes recorded on idempotency.executions.
const (
	outcomeExecuted         = "executed"
	outcomeCached           = "cached"
	outcomeConcurrent       = "concurrent"
	outcomeOperationFailed  = "operation_failed"
	outcomeRetriesExhausted = "retries_exhausted"
	outcomeError            = "error"
)

type metrics struct {
	executions metric.Int64Counter
	conflicts  metric.Int64Counter
	duration   metric.Float64Histogram
	reaped     metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	executions, err := meter.Int64Counter(
		"idempotency.executions",
		metric.WithDescription("Idempotent executions by outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	conflicts, err := meter.Int64Counter(
		"idempotency.storage_conflicts",
		metric.WithDescription("Uniqueness or version conflicts absorbed by the retry loop"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"idempotency.operation.duration_ms",
		metric.WithDescription("Duration of operations actually executed"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	reaped, err := meter.Int64Counter(
		"idempotency.reaped",
		metric.WithDescription("Records removed or reclaimed by the reaper"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		executions: executions,
		conflicts:  conflicts,
		duration:   duration,
		reaped:     reaped,
	}, nil
}

func (m *metrics) recordOutcome(ctx context.Context, operationType, outcome string) {
	m.executions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation_type", operationType),
		attribute.String("outcome", outcome),
	))
}

func (m *metrics) recordConflict(ctx context.Context, operationType string) {
	m.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("operation_type", operationType)))
}

func (m *metrics) recordDuration(ctx context.Context, operationType string, d time.Duration) {
	m.duration.Record(ctx, float64(d.Milliseconds()), metric.WithAttributes(attribute.String("operation_type", operationType)))
}

func (m *metrics) recordReaped(ctx context.Context, reason string, n int64) {
	if n == 0 {
		return
	}
	m.reaped.Add(ctx, n, metric.WithAttributes(attribute.String("reason", reason)))
}
