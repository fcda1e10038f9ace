package revenue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"

	"github.com/carelane/hospital-billing/billing/model"
	"github.com/carelane/hospital-billing/billing/store/payments"
)

// ChargePatient captures the patient's responsibility on a claim. A payment already
// captured under idempotencyKey is returned instead of charging twice.
func (b *business) ChargePatient(ctx context.Context, claim *model.Claim, method model.PaymentMethod, idempotencyKey string) (*model.Payment, error) {
	if idempotencyKey == "" {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key is required"}
	}
	if claim.PatientResponsibilityCents <= 0 {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "claim has no patient responsibility to charge"}
	}

	status := model.PaymentStatusCaptured
	if method == model.PaymentMethodPaymentPlan {
		status = model.PaymentStatusPending
	}

	dbPayment, err := b.paymentRepo.CreatePayment(ctx, payments.CreatePaymentParams{
		ID:             pgtype.UUID{Bytes: uuid.New(), Valid: true},
		ClaimNumber:    claim.ClaimNumber,
		PatientID:      claim.PatientID,
		AmountCents:    claim.PatientResponsibilityCents,
		Method:         string(method),
		Status:         string(status),
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			existing, getErr := b.paymentRepo.GetPaymentByIdempotencyKey(ctx, idempotencyKey)
			if getErr != nil {
				return nil, &errs.Error{Code: errs.Internal, Message: "failed to load existing payment"}
			}
			return convertDBPaymentToModel(existing), nil
		}

		return nil, &errs.Error{Code: errs.Internal, Message: "failed to charge patient"}
	}

	return convertDBPaymentToModel(dbPayment), nil
}

// convertDBPaymentToModel converts a database Payment to a domain model Payment
func convertDBPaymentToModel(dbPayment payments.Payment) *model.Payment {
	payment := &model.Payment{
		ClaimNumber:    dbPayment.ClaimNumber,
		PatientID:      dbPayment.PatientID,
		AmountCents:    dbPayment.AmountCents,
		Method:         model.PaymentMethod(dbPayment.Method),
		Status:         model.PaymentStatus(dbPayment.Status),
		IdempotencyKey: dbPayment.IdempotencyKey,
		CreatedAt:      dbPayment.CreatedAt.Time,
	}

	if dbPayment.ID.Valid {
		payment.ID = uuid.UUID(dbPayment.ID.Bytes).String()
	}

	return payment
}
