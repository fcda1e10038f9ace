package billing

import (
	"fmt"
	"testing"

	"encore.dev/beta/errs"
	"github.com/stretchr/testify/assert"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

func TestToAPIError(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode errs.ErrCode
	}{
		{"validation", &idempotency.Error{Kind: idempotency.KindValidation}, errs.InvalidArgument},
		{"concurrent_execution", &idempotency.Error{Kind: idempotency.KindConcurrentExecution}, errs.Aborted},
		{"already_completed", &idempotency.Error{Kind: idempotency.KindAlreadyCompleted}, errs.AlreadyExists},
		{"max_retries", &idempotency.Error{Kind: idempotency.KindMaxRetriesExceeded}, errs.Unavailable},
		{"storage_conflict", fmt.Errorf("claim: %w", idempotency.ErrStorageConflict), errs.Unavailable},
		{"serialization", &idempotency.Error{Kind: idempotency.KindSerialization}, errs.Internal},
		{"encore_error_passes_through", &errs.Error{Code: errs.NotFound, Message: "claim not found"}, errs.NotFound},
		{"unknown", assert.AnError, errs.Internal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedCode, errs.Code(toAPIError(tc.err)))
		})
	}

	assert.NoError(t, toAPIError(nil))
}
