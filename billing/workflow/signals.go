package workflow

const (
	// Signal names
	DischargePatientSignalName = "discharge-patient"
	CancelBillingSignalName    = "cancel-billing"
)

// DischargePatientSignal carries the final clinical and charge data known at discharge
type DischargePatientSignal struct {
	DiagnosisCodes   []string `json:"diagnosis_codes"`
	LengthOfStayDays int      `json:"length_of_stay_days"`
	ChargesCents     int64    `json:"charges_cents"`
}

// CancelBillingSignal stops billing for an encounter before a claim is generated
type CancelBillingSignal struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by"`
}
