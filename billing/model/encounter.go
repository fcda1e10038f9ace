package model

import (
	"time"
)

type Encounter struct {
	EncounterID              string    `json:"encounter_id"`
	PatientID                string    `json:"patient_id"`
	AuthorizationID          string    `json:"authorization_id"`
	PlanType                 PlanType  `json:"plan_type"`
	DiagnosisCodes           []string  `json:"diagnosis_codes"`
	LengthOfStayDays         int       `json:"length_of_stay_days"`
	ChargesCents             int64     `json:"charges_cents"`
	DeductibleRemainingCents int64     `json:"deductible_remaining_cents"`
	AdmittedAt               time.Time `json:"admitted_at"`
}

type PlanType string

const (
	PlanTypeCommercial PlanType = "commercial"
	PlanTypeMedicare   PlanType = "medicare"
	PlanTypeMedicaid   PlanType = "medicaid"
	PlanTypeSelfPay    PlanType = "self_pay"
)

// CoverageDecision is the outcome of an eligibility check for an encounter.
type CoverageDecision struct {
	Eligible                 bool     `json:"eligible"`
	PlanType                 PlanType `json:"plan_type"`
	CoveragePercent          int      `json:"coverage_percent"`
	DeductibleRemainingCents int64    `json:"deductible_remaining_cents"`
	Reason                   string   `json:"reason,omitempty"`
}
