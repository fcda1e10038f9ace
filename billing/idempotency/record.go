package idempotency

import (
	"time"
)

// Status is the lifecycle state of an idempotency record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Record is the durable bookkeeping row for one (operation type, operation key) pair.
type Record struct {
	ID            string
	OperationType string
	OperationKey  string
	// CallerContext identifies the originating workflow or request. It is kept for
	// audit queries only and never participates in uniqueness.
	CallerContext string
	Status        Status
	// Result holds the serialized operation result and is only set once Status is
	// StatusCompleted.
	Result    []byte
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
	Version   int64
}

// Expired reports whether the record has passed its expiry at now.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// clone returns a deep copy so stores never share result buffers with callers.
func (r *Record) clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Result != nil {
		out.Result = append([]byte(nil), r.Result...)
	}
	return &out
}
