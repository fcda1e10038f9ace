package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/workflow"
)

type StartEncounterBillingRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	EncounterID              string    `json:"encounter_id" validate:"required,max=64"`
	PatientID                string    `json:"patient_id" validate:"required,max=64"`
	AuthorizationID          string    `json:"authorization_id" validate:"max=64"`
	PlanType                 string    `json:"plan_type" validate:"required,oneof=commercial medicare medicaid self_pay"`
	DiagnosisCodes           []string  `json:"diagnosis_codes" validate:"required,min=1,dive,required,max=8"`
	DeductibleRemainingCents int64     `json:"deductible_remaining_cents" validate:"min=0"`
	PaymentMethod            string    `json:"payment_method" validate:"required,oneof=card bank_transfer payment_plan"`
	AdmittedAt               time.Time `json:"admitted_at"`
}

type EncounterBillingResponse struct {
	EncounterID string `json:"encounter_id"`
	WorkflowID  string `json:"workflow_id"`
	RunID       string `json:"run_id,omitempty"`
}

// StartEncounterBilling starts the billing workflow for an admitted patient.
//
//encore:api public path=/v1/encounters/billing method=POST tag:idempotency
func (s *Service) StartEncounterBilling(ctx context.Context, req *StartEncounterBillingRequest) (*EncounterBillingResponse, error) {
	if req.AdmittedAt.IsZero() {
		req.AdmittedAt = time.Now().UTC()
	}

	workflowID := billingWorkflowID(req.EncounterID)
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}

	params := workflow.PatientBillingParams{
		Encounter: model.Encounter{
			EncounterID:              req.EncounterID,
			PatientID:                req.PatientID,
			AuthorizationID:          req.AuthorizationID,
			PlanType:                 model.PlanType(req.PlanType),
			DiagnosisCodes:           req.DiagnosisCodes,
			DeductibleRemainingCents: req.DeductibleRemainingCents,
			AdmittedAt:               req.AdmittedAt,
		},
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	}

	run, err := s.temporal.ExecuteWorkflow(ctx, options, workflow.PatientBilling, params)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			rlog.Info("workflow already started", "encounter_id", req.EncounterID, "workflow_id", workflowID)
			return nil, &errs.Error{Code: errs.AlreadyExists, Message: "billing already started for encounter"}
		}
		rlog.Error("failed to start billing workflow", "encounter_id", req.EncounterID, "workflow_id", workflowID, "error", err)
		return nil, &errs.Error{Code: errs.Unavailable, Message: "failed to start billing workflow"}
	}

	return &EncounterBillingResponse{
		EncounterID: req.EncounterID,
		WorkflowID:  run.GetID(),
		RunID:       run.GetRunID(),
	}, nil
}

// Validate implements validation for StartEncounterBillingRequest using go-playground/validator
func (r *StartEncounterBillingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	if r.PlanType != string(model.PlanTypeSelfPay) && r.AuthorizationID == "" {
		return &errs.Error{Code: errs.InvalidArgument, Message: "authorization_id is required for insured plans"}
	}

	if !r.AdmittedAt.IsZero() && r.AdmittedAt.After(time.Now()) {
		return &errs.Error{Code: errs.InvalidArgument, Message: "admitted_at must not be in the future"}
	}

	return nil
}

type DischargeEncounterRequest struct {
	DiagnosisCodes   []string `json:"diagnosis_codes" validate:"omitempty,dive,required,max=8"`
	LengthOfStayDays int      `json:"length_of_stay_days" validate:"min=0,max=365"`
	ChargesCents     int64    `json:"charges_cents" validate:"gt=0"`
}

// DischargeEncounter records the patient's discharge, which lets the workflow file the claim.
//
//encore:api public path=/v1/encounters/:encounterID/discharge method=POST
func (s *Service) DischargeEncounter(ctx context.Context, encounterID string, req *DischargeEncounterRequest) (*EncounterBillingResponse, error) {
	workflowID := billingWorkflowID(encounterID)

	err := s.temporal.SignalWorkflow(ctx, workflowID, "", workflow.DischargePatientSignalName, workflow.DischargePatientSignal{
		DiagnosisCodes:   req.DiagnosisCodes,
		LengthOfStayDays: req.LengthOfStayDays,
		ChargesCents:     req.ChargesCents,
	})
	if err != nil {
		rlog.Error("failed to signal discharge", "encounter_id", encounterID, "workflow_id", workflowID, "error", err)
		return nil, &errs.Error{Code: errs.FailedPrecondition, Message: "billing workflow is not running for encounter"}
	}

	return &EncounterBillingResponse{
		EncounterID: encounterID,
		WorkflowID:  workflowID,
	}, nil
}

// Validate implements validation for DischargeEncounterRequest
func (r *DischargeEncounterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	return nil
}

type CancelEncounterBillingRequest struct {
	Reason      string `json:"reason" validate:"required,max=255"`
	CancelledBy string `json:"cancelled_by" validate:"max=64"`
}

// CancelEncounterBilling asks the workflow to stop before a claim is filed. The signal is
// delivered in the background.
//
//encore:api public path=/v1/encounters/:encounterID/cancel method=POST
func (s *Service) CancelEncounterBilling(ctx context.Context, encounterID string, req *CancelEncounterBillingRequest) (*EncounterBillingResponse, error) {
	workflowID := billingWorkflowID(encounterID)

	s.signalInBackground(workflowID, workflow.CancelBillingSignalName, workflow.CancelBillingSignal{
		Reason:      req.Reason,
		CancelledBy: req.CancelledBy,
	})

	return &EncounterBillingResponse{
		EncounterID: encounterID,
		WorkflowID:  workflowID,
	}, nil
}

// Validate implements validation for CancelEncounterBillingRequest
func (r *CancelEncounterBillingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}

	return nil
}

func billingWorkflowID(encounterID string) string {
	return fmt.Sprintf("billing-%s", encounterID)
}
