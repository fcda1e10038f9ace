package billing

import (
	"context"
	"encoding/json"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/model"
)

type IdempotencyRecordResponse struct {
	Record model.IdempotencyRecord `json:"record"`
}

//encore:api private path=/v1/idempotency/records/:operationType/:operationKey method=GET
func (s *Service) GetIdempotencyRecord(ctx context.Context, operationType, operationKey string) (*IdempotencyRecordResponse, error) {
	rec, err := s.coordinator.Lookup(ctx, operationType, operationKey)
	if err != nil {
		rlog.Error("failed to look up idempotency record", "operation_type", operationType, "operation_key", operationKey, "error", err)
		return nil, toAPIError(err)
	}
	if rec == nil {
		return nil, &errs.Error{Code: errs.NotFound, Message: "idempotency record not found"}
	}

	return &IdempotencyRecordResponse{Record: convertRecordToModel(*rec)}, nil
}

type StoreIdempotentResultRequest struct {
	Result json.RawMessage `json:"result" validate:"required"`
}

// StoreIdempotentResult records the outcome of an operation that was executed by hand, so
// the workflow does not run it again.
//
//encore:api private path=/v1/idempotency/records/:operationType/:operationKey method=PUT
func (s *Service) StoreIdempotentResult(ctx context.Context, operationType, operationKey string, req *StoreIdempotentResultRequest) (*IdempotencyRecordResponse, error) {
	ctx = idempotency.WithCallerContext(ctx, "admin-api")
	if err := s.coordinator.StoreResult(ctx, operationType, operationKey, req.Result); err != nil {
		rlog.Error("failed to store idempotent result", "operation_type", operationType, "operation_key", operationKey, "error", err)
		return nil, toAPIError(err)
	}

	return s.GetIdempotencyRecord(ctx, operationType, operationKey)
}

// Validate implements validation for StoreIdempotentResultRequest
func (r *StoreIdempotentResultRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	if !json.Valid(r.Result) {
		return &errs.Error{Code: errs.InvalidArgument, Message: "result must be valid JSON"}
	}

	return nil
}

type ListIdempotencyRecordsParams struct {
	CallerContext string `query:"caller_context" validate:"required,max=255"`
}

type ListIdempotencyRecordsResponse struct {
	Records []model.IdempotencyRecord `json:"records"`
}

//encore:api private path=/v1/idempotency/records method=GET
func (s *Service) ListIdempotencyRecords(ctx context.Context, params *ListIdempotencyRecordsParams) (*ListIdempotencyRecordsResponse, error) {
	records, err := s.coordinator.FindByCallerContext(ctx, params.CallerContext)
	if err != nil {
		rlog.Error("failed to list idempotency records", "caller_context", params.CallerContext, "error", err)
		return nil, toAPIError(err)
	}

	resp := &ListIdempotencyRecordsResponse{Records: make([]model.IdempotencyRecord, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, convertRecordToModel(rec))
	}
	return resp, nil
}

// Validate implements validation for ListIdempotencyRecordsParams
func (p *ListIdempotencyRecordsParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	return nil
}

type IdempotencyStatsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

//encore:api private path=/v1/idempotency/stats method=GET
func (s *Service) GetIdempotencyStats(ctx context.Context) (*IdempotencyStatsResponse, error) {
	counts, err := s.coordinator.CountByStatus(ctx)
	if err != nil {
		rlog.Error("failed to count idempotency records", "error", err)
		return nil, toAPIError(err)
	}

	resp := &IdempotencyStatsResponse{Counts: make(map[string]int64, len(counts))}
	for status, n := range counts {
		resp.Counts[string(status)] = n
	}
	return resp, nil
}

// convertRecordToModel converts a stored record to its API representation
func convertRecordToModel(rec idempotency.Record) model.IdempotencyRecord {
	out := model.IdempotencyRecord{
		OperationType: rec.OperationType,
		OperationKey:  rec.OperationKey,
		CallerContext: rec.CallerContext,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		ExpiresAt:     rec.ExpiresAt,
		Version:       rec.Version,
	}
	if len(rec.Result) > 0 && json.Valid(rec.Result) {
		out.Result = json.RawMessage(rec.Result)
	}
	return out
}
