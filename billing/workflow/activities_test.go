package workflow

import (
	"context"
	"errors"
	"testing"

	"encore.dev/beta/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.uber.org/mock/gomock"

	"github.com/carelane/hospital-billing/billing/idempotency"
	revenuemock "github.com/carelane/hospital-billing/billing/mocks/business/revenue_business"
	"github.com/carelane/hospital-billing/billing/model"
)

func TestGenerateClaimActivity_RetryReturnsSameClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockBiz := revenuemock.NewMockBusiness(ctrl)
	store := setupMockDeps(t, mockBiz)

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(GenerateClaimActivity)

	encounter := admittedEncounter()
	encounter.ChargesCents = 25000
	coverage := model.CoverageDecision{Eligible: true, CoveragePercent: 80}

	mockBiz.EXPECT().
		GenerateClaim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.Claim{ClaimNumber: "CLM-1", PatientResponsibilityCents: 9000}, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		val, err := env.ExecuteActivity(GenerateClaimActivity, encounter, coverage)
		require.NoError(t, err)

		var claim model.Claim
		require.NoError(t, val.Get(&claim))
		assert.Equal(t, "CLM-1", claim.ClaimNumber)
	}

	key, err := ClaimKey(&encounter)
	require.NoError(t, err)
	rec, err := store.Find(context.Background(), OperationClaimGeneration, key)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, idempotency.StatusCompleted, rec.Status)
	assert.NotEmpty(t, rec.CallerContext, "workflow id is recorded as caller context")
}

func TestChargePatientActivity_FailureIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockBiz := revenuemock.NewMockBusiness(ctrl)
	setupMockDeps(t, mockBiz)

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(ChargePatientActivity)

	claim := model.Claim{ClaimNumber: "CLM-1", PatientID: "P1", PatientResponsibilityCents: 9000}

	gomock.InOrder(
		mockBiz.EXPECT().ChargePatient(gomock.Any(), gomock.Any(), model.PaymentMethodCard, gomock.Any()).
			Return(nil, errors.New("gateway timeout")),
		mockBiz.EXPECT().ChargePatient(gomock.Any(), gomock.Any(), model.PaymentMethodCard, gomock.Any()).
			Return(&model.Payment{ID: "pay-1", AmountCents: 9000}, nil),
	)

	_, err := env.ExecuteActivity(ChargePatientActivity, claim, model.PaymentMethodCard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway timeout")

	val, err := env.ExecuteActivity(ChargePatientActivity, claim, model.PaymentMethodCard)
	require.NoError(t, err)
	var payment model.Payment
	require.NoError(t, val.Get(&payment))
	assert.Equal(t, "pay-1", payment.ID)
}

func TestActivities_DependenciesNotSet(t *testing.T) {
	activityDeps = nil

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(VerifyCoverageActivity)

	_, err := env.ExecuteActivity(VerifyCoverageActivity, admittedEncounter())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity dependencies not initialized")
}

func TestKeys(t *testing.T) {
	encounter := admittedEncounter()
	encounter.ChargesCents = 25000

	a, err := ClaimKey(&encounter)
	require.NoError(t, err)
	b, err := ClaimKey(&encounter)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	encounter.ChargesCents = 25001
	c, err := ClaimKey(&encounter)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "final charges are part of the claim key")

	claim := &model.Claim{ClaimNumber: "CLM-1", PatientID: "P1", PatientResponsibilityCents: 9000}
	p1, err := PaymentKey(claim)
	require.NoError(t, err)
	claim.ClaimNumber = "CLM-2"
	p2, err := PaymentKey(claim)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestToActivityError(t *testing.T) {
	testCases := []struct {
		name              string
		err               error
		expectAppError    bool
		expectNonRetry    bool
		expectedErrorType string
	}{
		{
			name:              "concurrent_execution_is_retryable",
			err:               &idempotency.Error{Kind: idempotency.KindConcurrentExecution, OperationType: "PAYMENT", OperationKey: "k1"},
			expectAppError:    true,
			expectedErrorType: "concurrent_execution",
		},
		{
			name:              "max_retries_is_retryable",
			err:               &idempotency.Error{Kind: idempotency.KindMaxRetriesExceeded},
			expectAppError:    true,
			expectedErrorType: "max_retries_exceeded",
		},
		{
			name:              "validation_is_final",
			err:               &idempotency.Error{Kind: idempotency.KindValidation},
			expectAppError:    true,
			expectNonRetry:    true,
			expectedErrorType: "validation",
		},
		{
			name:              "serialization_is_final",
			err:               &idempotency.Error{Kind: idempotency.KindSerialization},
			expectAppError:    true,
			expectNonRetry:    true,
			expectedErrorType: "serialization",
		},
		{
			name:              "invalid_argument_is_final",
			err:               &errs.Error{Code: errs.InvalidArgument, Message: "bad input"},
			expectAppError:    true,
			expectNonRetry:    true,
			expectedErrorType: errs.InvalidArgument.String(),
		},
		{
			name: "other_errors_pass_through",
			err:  assert.AnError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := toActivityError(tc.err)

			var appErr *temporal.ApplicationError
			if !tc.expectAppError {
				assert.False(t, errors.As(err, &appErr))
				assert.Same(t, tc.err, err)
				return
			}

			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.expectNonRetry, appErr.NonRetryable())
			assert.Equal(t, tc.expectedErrorType, appErr.Type())
		})
	}
}
