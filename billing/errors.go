package billing

import (
	"errors"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

// toAPIError maps idempotency errors onto Encore error codes. Other errors pass through.
func toAPIError(err error) error {
	if err == nil {
		return nil
	}

	switch idempotency.KindOf(err) {
	case idempotency.KindValidation:
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	case idempotency.KindConcurrentExecution:
		return &errs.Error{Code: errs.Aborted, Message: "operation is already being processed"}
	case idempotency.KindAlreadyCompleted:
		return &errs.Error{Code: errs.AlreadyExists, Message: "operation already completed"}
	case idempotency.KindMaxRetriesExceeded, idempotency.KindStorageConflict:
		return &errs.Error{Code: errs.Unavailable, Message: err.Error()}
	case idempotency.KindSerialization:
		return &errs.Error{Code: errs.Internal, Message: "stored result could not be decoded"}
	}

	var e *errs.Error
	if errors.As(err, &e) {
		return e
	}
	return &errs.Error{Code: errs.Internal, Message: "internal error"}
}
