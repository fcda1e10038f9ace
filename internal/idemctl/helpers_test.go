package idemctl

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

// seedRecord builds a record created ageHours hours from now with the default TTL.
func seedRecord(opType, opKey string, status idempotency.Status, ageHours int) *idempotency.Record {
	created := time.Now().UTC().Add(time.Duration(ageHours) * time.Hour)
	return &idempotency.Record{
		ID:            uuid.NewString(),
		OperationType: opType,
		OperationKey:  opKey,
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
		ExpiresAt:     created.Add(24 * time.Hour),
		Version:       1,
	}
}
