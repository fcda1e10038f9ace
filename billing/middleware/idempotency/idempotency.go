package idempotency

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync/atomic"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"

	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/model"
)

var (
	IDEMPOTENCY_HEADER = "X-Idempotency-Key"
)

var coordinator atomic.Pointer[idempotency.Coordinator]

// Use sets the coordinator that deduplicates tagged requests.
func Use(c *idempotency.Coordinator) {
	coordinator.Store(c)
}

// handlerError carries a failed handler response through the coordinator so it can be
// returned to the caller unchanged.
type handlerError struct {
	resp middleware.Response
}

func (e *handlerError) Error() string {
	if e.resp.Err == nil {
		return "request failed"
	}
	return e.resp.Err.Error()
}

//encore:middleware target=tag:idempotency
func IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	idempotencyKey, err := extractIdempotencyKey(req)
	if err != nil {
		return middleware.Response{Err: err}
	}

	c := coordinator.Load()
	if c == nil {
		rlog.Error("Idempotency coordinator not configured")
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "Failed to check idempotency"}}
	}

	bodyHash := generateBodyHash(req)
	operationType := operationTypeFor(req)

	var (
		executed bool
		fresh    middleware.Response
	)
	stored, execErr := c.ExecuteRaw(req.Context(), operationType, idempotencyKey, func(ctx context.Context) ([]byte, error) {
		executed = true
		fresh = next(req)
		if fresh.Err != nil {
			return nil, &handlerError{resp: fresh}
		}
		return encodeResponse(bodyHash, fresh)
	})

	if execErr != nil {
		var he *handlerError
		if errors.As(execErr, &he) {
			return he.resp
		}
		return middleware.Response{Err: coordinatorError(execErr, idempotencyKey)}
	}
	if executed {
		rlog.Debug("Request completed and response stored", "key", idempotencyKey)
		return fresh
	}

	return handleCompletedEntry(req, stored, bodyHash, idempotencyKey)
}

// extractIdempotencyKey extracts and validates the idempotency key from headers
func extractIdempotencyKey(req middleware.Request) (string, *errs.Error) {
	var idempotencyKey string
	if headers := req.Data().Headers; headers != nil {
		idempotencyKey = strings.TrimSpace(headers.Get(IDEMPOTENCY_HEADER))
	}

	if len(idempotencyKey) == 0 {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "X-Idempotency-Key header is required"}
	}
	if len(idempotencyKey) > 255 {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: "X-Idempotency-Key header must be at most 255 characters"}
	}

	return idempotencyKey, nil
}

// operationTypeFor scopes client keys to the endpoint they were sent to
func operationTypeFor(req middleware.Request) string {
	data := req.Data()
	if data.Service != "" && data.Endpoint != "" {
		return "HTTP:" + data.Service + "." + data.Endpoint
	}
	return "HTTP:" + data.Path
}

// generateBodyHash creates a hash of the request body for conflict detection
func generateBodyHash(req middleware.Request) string {
	var bodyHash string
	if payload := req.Data().Payload; payload != nil {
		if bodyBytes, err := json.Marshal(payload); err != nil {
			rlog.Error("Failed to marshal request body", "error", err)
		} else {
			bodyHash = hashing(bodyBytes)
		}
	}
	return bodyHash
}

func encodeResponse(bodyHash string, resp middleware.Response) ([]byte, error) {
	entry := model.IdempotentResponse{RequestBodyHash: bodyHash}
	if resp.Payload != nil {
		payloadBytes, err := json.Marshal(resp.Payload)
		if err != nil {
			rlog.Error("Failed to marshal response payload for storing", "error", err)
			return nil, err
		}
		entry.Response = payloadBytes
	}
	return json.Marshal(entry)
}

// validateBodyHash checks for conflicts in request body hash
func validateBodyHash(entry model.IdempotentResponse, bodyHash string) *errs.Error {
	if bodyHash != "" && entry.RequestBodyHash != "" && bodyHash != entry.RequestBodyHash {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

// coordinatorError maps a coordinator failure to the error returned to the client
func coordinatorError(err error, idempotencyKey string) *errs.Error {
	switch idempotency.KindOf(err) {
	case idempotency.KindConcurrentExecution:
		rlog.Info("Concurrent request detected", "key", idempotencyKey)
		return &errs.Error{Code: errs.Aborted, Message: "Request is already being processed."}
	case idempotency.KindValidation:
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	case idempotency.KindMaxRetriesExceeded, idempotency.KindStorageConflict:
		rlog.Warn("Idempotency storage contention", "key", idempotencyKey, "error", err)
		return &errs.Error{Code: errs.Unavailable, Message: "Request could not be recorded, retry later"}
	}
	rlog.Error("Failed to check idempotency", "key", idempotencyKey, "error", err)
	return &errs.Error{Code: errs.Internal, Message: "Failed to check idempotency"}
}

// handleCompletedEntry returns the stored response of an earlier request with the same key
func handleCompletedEntry(req middleware.Request, stored []byte, bodyHash, idempotencyKey string) middleware.Response {
	var entry model.IdempotentResponse
	if err := json.Unmarshal(stored, &entry); err != nil {
		rlog.Error("Failed to decode stored response", "error", err, "key", idempotencyKey)
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "Stored response could not be decoded"}}
	}

	if err := validateBodyHash(entry, bodyHash); err != nil {
		return middleware.Response{Err: err}
	}

	rlog.Info("Returning stored response", "key", idempotencyKey)
	if len(entry.Response) == 0 {
		return middleware.Response{}
	}

	// Get the response type from the API metadata
	var responseType reflect.Type
	if api := req.Data().API; api != nil {
		responseType = api.ResponseType
	}
	if responseType == nil {
		return middleware.Response{Payload: entry.Response}
	}

	if responseType.Kind() == reflect.Pointer {
		responseType = responseType.Elem()
	}
	responseValue := reflect.New(responseType).Interface()
	if err := json.Unmarshal(entry.Response, responseValue); err != nil {
		rlog.Error("Failed to unmarshal stored response into correct type", "error", err, "key", idempotencyKey)
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "Stored response could not be decoded"}}
	}
	return middleware.Response{Payload: responseValue}
}

// hashing creates a stable hash of the JSON request body
func hashing(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	hash := md5.New()
	hash.Write(body)
	return hex.EncodeToString(hash.Sum(nil))
}
