package model

import (
	"time"
)

type Payment struct {
	ID             string        `json:"id"`
	ClaimNumber    string        `json:"claim_number"`
	PatientID      string        `json:"patient_id"`
	AmountCents    int64         `json:"amount_cents"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	IdempotencyKey string        `json:"idempotency_key"`
	CreatedAt      time.Time     `json:"created_at"`
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPaymentPlan  PaymentMethod = "payment_plan"
)

type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusPending  PaymentStatus = "pending"
)
