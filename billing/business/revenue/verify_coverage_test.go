package revenue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelane/hospital-billing/billing/model"
)

func TestVerifyCoverage(t *testing.T) {
	business := &business{}

	testCases := []struct {
		name             string
		encounter        *model.Encounter
		expectEligible   bool
		expectPercent    int
		expectReason     string
		expectDeductible int64
		expectedError    string
	}{
		{
			name:             "commercial_with_authorization",
			encounter:        &model.Encounter{PatientID: "P1", AuthorizationID: "AUTH100", PlanType: model.PlanTypeCommercial, DeductibleRemainingCents: 50000},
			expectEligible:   true,
			expectPercent:    70,
			expectDeductible: 50000,
		},
		{
			name:           "medicare",
			encounter:      &model.Encounter{PatientID: "P1", AuthorizationID: "AUTH100", PlanType: model.PlanTypeMedicare},
			expectEligible: true,
			expectPercent:  80,
		},
		{
			name:             "medicaid_has_no_deductible",
			encounter:        &model.Encounter{PatientID: "P1", AuthorizationID: "AUTH100", PlanType: model.PlanTypeMedicaid, DeductibleRemainingCents: 10000},
			expectEligible:   true,
			expectPercent:    100,
			expectDeductible: 0,
		},
		{
			name:         "missing_authorization",
			encounter:    &model.Encounter{PatientID: "P1", PlanType: model.PlanTypeCommercial},
			expectReason: "missing_authorization",
		},
		{
			name:         "self_pay",
			encounter:    &model.Encounter{PatientID: "P1", AuthorizationID: "AUTH100", PlanType: model.PlanTypeSelfPay},
			expectReason: "self_pay",
		},
		{
			name:          "unknown_plan",
			encounter:     &model.Encounter{PatientID: "P1", PlanType: "workers_comp"},
			expectedError: "unknown plan type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := business.VerifyCoverage(context.Background(), tc.encounter)

			if tc.expectedError != "" {
				assert.Error(t, err)
				assert.Nil(t, decision)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectEligible, decision.Eligible)
			assert.Equal(t, tc.expectPercent, decision.CoveragePercent)
			assert.Equal(t, tc.expectReason, decision.Reason)
			assert.Equal(t, tc.expectDeductible, decision.DeductibleRemainingCents)
		})
	}
}

func TestSplitCharges(t *testing.T) {
	testCases := []struct {
		name          string
		charges       int64
		coverage      *model.CoverageDecision
		expectCovered int64
		expectPatient int64
	}{
		{
			name:          "coinsurance_after_deductible",
			charges:       25000,
			coverage:      &model.CoverageDecision{Eligible: true, CoveragePercent: 80, DeductibleRemainingCents: 5000},
			expectCovered: 16000,
			expectPatient: 9000,
		},
		{
			name:          "deductible_exceeds_charges",
			charges:       3000,
			coverage:      &model.CoverageDecision{Eligible: true, CoveragePercent: 80, DeductibleRemainingCents: 5000},
			expectCovered: 0,
			expectPatient: 3000,
		},
		{
			name:          "full_coverage",
			charges:       12345,
			coverage:      &model.CoverageDecision{Eligible: true, CoveragePercent: 100},
			expectCovered: 12345,
			expectPatient: 0,
		},
		{
			name:          "not_eligible",
			charges:       25000,
			coverage:      &model.CoverageDecision{Eligible: false, CoveragePercent: 80},
			expectCovered: 0,
			expectPatient: 25000,
		},
		{
			name:          "nil_coverage",
			charges:       100,
			expectCovered: 0,
			expectPatient: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			covered, patient := SplitCharges(tc.charges, tc.coverage)
			assert.Equal(t, tc.expectCovered, covered)
			assert.Equal(t, tc.expectPatient, patient)
			assert.Equal(t, tc.charges, covered+patient)
		})
	}
}
