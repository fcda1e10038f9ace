package model

import (
	"time"
)

type Claim struct {
	ID                         int64       `json:"id"`
	ClaimNumber                string      `json:"claim_number"`
	EncounterID                string      `json:"encounter_id"`
	PatientID                  string      `json:"patient_id"`
	AuthorizationID            string      `json:"authorization_id"`
	DRGCode                    string      `json:"drg_code"`
	BilledCents                int64       `json:"billed_cents"`
	CoveredCents               int64       `json:"covered_cents"`
	PatientResponsibilityCents int64       `json:"patient_responsibility_cents"`
	Status                     ClaimStatus `json:"status"`
	IdempotencyKey             string      `json:"idempotency_key"`
	CreatedAt                  time.Time   `json:"created_at"`
}

type ClaimStatus string

const (
	ClaimStatusSubmitted ClaimStatus = "submitted"
	ClaimStatusPaid      ClaimStatus = "paid"
	ClaimStatusDenied    ClaimStatus = "denied"
)

// AgingBucket groups outstanding receivables by days since the claim was submitted.
type AgingBucket string

const (
	AgingBucketCurrent AgingBucket = "0-30"
	AgingBucket31To60  AgingBucket = "31-60"
	AgingBucket61To90  AgingBucket = "61-90"
	AgingBucket91To120 AgingBucket = "91-120"
	AgingBucketOver120 AgingBucket = "120+"
)
