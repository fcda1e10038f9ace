package idempotency

import (
	"errors"
	"fmt"
)

// Kind classifies coordinator errors.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks malformed key-derivation or request input. Never retried.
	KindValidation
	// KindConcurrentExecution means another attempt currently holds the key.
	KindConcurrentExecution
	// KindStorageConflict is a transient uniqueness or version conflict. It is absorbed
	// by the coordinator retry loop and only escapes wrapped in KindMaxRetriesExceeded.
	KindStorageConflict
	// KindMaxRetriesExceeded means storage conflicts outlasted the retry budget.
	KindMaxRetriesExceeded
	// KindOperationExecution is reserved for reporting; the operation's own error is
	// always returned to the caller unchanged.
	KindOperationExecution
	// KindSerialization means a result could not be encoded or decoded.
	KindSerialization
	// KindAlreadyCompleted is returned by StoreResult for a key that already holds a
	// completed result.
	KindAlreadyCompleted
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConcurrentExecution:
		return "concurrent_execution"
	case KindStorageConflict:
		return "storage_conflict"
	case KindMaxRetriesExceeded:
		return "max_retries_exceeded"
	case KindOperationExecution:
		return "operation_execution"
	case KindSerialization:
		return "serialization"
	case KindAlreadyCompleted:
		return "already_completed"
	default:
		return "unknown"
	}
}

// Error is returned by the coordinator, carrying the operation it concerns.
type Error struct {
	Kind          Kind
	OperationType string
	OperationKey  string
	Message       string
	Err           error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.OperationType != "" || e.OperationKey != "" {
		msg = fmt.Sprintf("%s (operation_type=%s operation_key=%s)", msg, e.OperationType, e.OperationKey)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can compare against the
// Err* sentinels regardless of the operation attached.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation          = &Error{Kind: KindValidation}
	ErrConcurrentExecution = &Error{Kind: KindConcurrentExecution}
	ErrStorageConflict     = &Error{Kind: KindStorageConflict}
	ErrMaxRetriesExceeded  = &Error{Kind: KindMaxRetriesExceeded}
	ErrSerialization       = &Error{Kind: KindSerialization}
	ErrAlreadyCompleted    = &Error{Kind: KindAlreadyCompleted}
)

// Storage-level signals every KeyStore implementation must return.
var (
	// ErrDuplicateKey is returned by Insert when the (type, key) pair exists.
	ErrDuplicateKey = errors.New("idempotency: duplicate operation key")
	// ErrVersionConflict is returned when a version-checked write finds a newer row.
	ErrVersionConflict = errors.New("idempotency: record version conflict")
)

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func newError(kind Kind, opType, opKey, msg string, err error) *Error {
	return &Error{Kind: kind, OperationType: opType, OperationKey: opKey, Message: msg, Err: err}
}
