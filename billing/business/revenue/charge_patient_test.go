package revenue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/carelane/hospital-billing/billing/mocks/store/payments_repo"
	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/payments"
)

func TestChargePatient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := payments_repo.NewMockQuerier(ctrl)
	business := &business{paymentRepo: mockRepo}

	paymentID := uuid.New()
	claim := &model.Claim{ClaimNumber: "CLM-1", PatientID: "P1", PatientResponsibilityCents: 9000}

	testCases := []struct {
		name          string
		method        model.PaymentMethod
		mockReturn    payments.Payment
		mockError     error
		existing      *payments.Payment
		expectStatus  string
		expectedError string
		expectSuccess bool
	}{
		{
			name:   "card_is_captured",
			method: model.PaymentMethodCard,
			mockReturn: payments.Payment{
				ID:          pgtype.UUID{Bytes: paymentID, Valid: true},
				ClaimNumber: "CLM-1",
				AmountCents: 9000,
				Method:      "card",
				Status:      "captured",
			},
			expectStatus:  "captured",
			expectSuccess: true,
		},
		{
			name:   "payment_plan_is_pending",
			method: model.PaymentMethodPaymentPlan,
			mockReturn: payments.Payment{
				ID:          pgtype.UUID{Bytes: paymentID, Valid: true},
				ClaimNumber: "CLM-1",
				AmountCents: 9000,
				Method:      "payment_plan",
				Status:      "pending",
			},
			expectStatus:  "pending",
			expectSuccess: true,
		},
		{
			name:      "duplicate_returns_existing_payment",
			method:    model.PaymentMethodCard,
			mockError: &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			existing: &payments.Payment{
				ID:          pgtype.UUID{Bytes: paymentID, Valid: true},
				ClaimNumber: "CLM-1",
				AmountCents: 9000,
				Status:      "captured",
			},
			expectStatus:  "captured",
			expectSuccess: true,
		},
		{
			name:          "general_error",
			method:        model.PaymentMethodCard,
			mockError:     assert.AnError,
			expectedError: "failed to charge patient",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo.EXPECT().
				CreatePayment(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, arg payments.CreatePaymentParams) (payments.Payment, error) {
					assert.True(t, arg.ID.Valid)
					assert.Equal(t, int64(9000), arg.AmountCents)
					assert.Equal(t, string(tc.method), arg.Method)
					return tc.mockReturn, tc.mockError
				})
			if tc.existing != nil {
				mockRepo.EXPECT().GetPaymentByIdempotencyKey(gomock.Any(), "pay-key").Return(*tc.existing, nil)
			}

			result, err := business.ChargePatient(context.Background(), claim, tc.method, "pay-key")

			if tc.expectSuccess {
				assert.NoError(t, err)
				assert.Equal(t, paymentID.String(), result.ID)
				assert.Equal(t, model.PaymentStatus(tc.expectStatus), result.Status)
			} else {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Contains(t, err.Error(), tc.expectedError)
			}
		})
	}
}

func TestChargePatient_NothingToCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	business := &business{paymentRepo: payments_repo.NewMockQuerier(ctrl)}

	_, err := business.ChargePatient(context.Background(), &model.Claim{ClaimNumber: "CLM-1"}, model.PaymentMethodCard, "pay-key")
	assert.ErrorContains(t, err, "no patient responsibility")
}
