package model

import (
	"encoding/json"
	"time"
)

// IdempotencyRecord is the API view of a stored idempotency record.
type IdempotencyRecord struct {
	OperationType string          `json:"operation_type"`
	OperationKey  string          `json:"operation_key"`
	CallerContext string          `json:"caller_context,omitempty"`
	Status        string          `json:"status"`
	Result        json.RawMessage `json:"result,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	Version       int64           `json:"version"`
}

// IdempotentResponse is what the HTTP middleware stores as the result of a request.
type IdempotentResponse struct {
	RequestBodyHash string          `json:"request_body_hash"`
	Response        json.RawMessage `json:"response,omitempty"`
}
