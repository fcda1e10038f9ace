package billing

import (
	"context"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/cron"
	"encore.dev/rlog"
)

var _ = cron.NewJob("cleanup-expired-idempotency-keys", cron.JobConfig{
	Title:    "Delete expired idempotency records",
	Every:    1 * cron.Hour,
	Endpoint: CleanupExpiredKeys,
})

var _ = cron.NewJob("cleanup-stuck-idempotency-keys", cron.JobConfig{
	Title:    "Reclaim idempotency records stuck in processing",
	Every:    10 * cron.Minute,
	Endpoint: CleanupStuckKeys,
})

type CleanupResponse struct {
	Count int64 `json:"count"`
}

//encore:api private
func (s *Service) CleanupExpiredKeys(ctx context.Context) (*CleanupResponse, error) {
	n, err := s.coordinator.CleanupExpiredKeys(ctx)
	if err != nil {
		rlog.Error("failed to clean up expired idempotency keys", "error", err)
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to clean up expired keys"}
	}
	return &CleanupResponse{Count: n}, nil
}

//encore:api private
func (s *Service) CleanupStuckKeys(ctx context.Context) (*CleanupResponse, error) {
	return s.ReclaimStuckKeys(ctx, &ReclaimStuckKeysRequest{})
}

type ReclaimStuckKeysRequest struct {
	// Records processing for longer than this are reclaimed. Zero uses the configured default.
	TimeoutSeconds int64 `json:"timeout_seconds" validate:"min=0"`
}

//encore:api private path=/v1/idempotency/cleanup/stuck method=POST
func (s *Service) ReclaimStuckKeys(ctx context.Context, req *ReclaimStuckKeysRequest) (*CleanupResponse, error) {
	timeout := time.Duration(req.TimeoutSeconds) * time.Second
	n, err := s.coordinator.CleanupStuckKeys(ctx, timeout)
	if err != nil {
		rlog.Error("failed to reclaim stuck idempotency keys", "error", err, "timeout", timeout)
		return nil, &errs.Error{Code: errs.Internal, Message: "failed to reclaim stuck keys"}
	}
	return &CleanupResponse{Count: n}, nil
}

// Validate implements validation for ReclaimStuckKeysRequest
func (r *ReclaimStuckKeysRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	return nil
}
