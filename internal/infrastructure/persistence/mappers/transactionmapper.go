package mappers

import (
	"fmt"

	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	subvo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/infrastructure/persistence/models"
)

func TransactionToModel(t *payment.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                    t.ID(),
		UserID:                t.UserID(),
		PlanID:                t.PlanID(),
		Amount:                t.Amount().Amount(),
		Currency:              t.Amount().Currency(),
		PaymentMethod:         t.PaymentMethod().String(),
		BillingCycle:          t.BillingCycle().String(),
		VoucherID:             t.VoucherID(),
		Gateway:               t.Gateway(),
		Status:                t.Status().String(),
		ExternalTransactionID: t.ExternalTransactionID(),
		InvoiceURL:            t.InvoiceURL(),
		PaidAmount:            t.PaidAmount(),
		PaidAt:                t.PaidAt(),
		FailureReason:         t.FailureReason(),
		ActivationPending:     t.ActivationPending(),
		ActivationError:       t.ActivationError(),
		CreatedAt:             t.CreatedAt(),
		UpdatedAt:             t.UpdatedAt(),
	}
}

func TransactionToDomain(model *models.TransactionModel) (*payment.Transaction, error) {
	status, err := vo.NewTransactionStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", model.ID, err)
	}

	method, err := vo.NewPaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", model.ID, err)
	}

	cycle, err := subvo.NewBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", model.ID, err)
	}

	paidAt := model.PaidAt
	if paidAt != nil {
		utc := paidAt.UTC()
		paidAt = &utc
	}

	return payment.ReconstructTransaction(payment.TransactionReconstructParams{
		ID:                    model.ID,
		UserID:                model.UserID,
		PlanID:                model.PlanID,
		Amount:                vo.NewMoney(model.Amount, model.Currency),
		PaymentMethod:         method,
		BillingCycle:          cycle,
		VoucherID:             model.VoucherID,
		Gateway:               model.Gateway,
		Status:                status,
		ExternalTransactionID: model.ExternalTransactionID,
		InvoiceURL:            model.InvoiceURL,
		PaidAmount:            model.PaidAmount,
		PaidAt:                paidAt,
		FailureReason:         model.FailureReason,
		ActivationPending:     model.ActivationPending,
		ActivationError:       model.ActivationError,
		CreatedAt:             model.CreatedAt.UTC(),
		UpdatedAt:             model.UpdatedAt.UTC(),
	}), nil
}

func TransactionsToDomain(rows []models.TransactionModel) ([]*payment.Transaction, error) {
	txns := make([]*payment.Transaction, 0, len(rows))
	for i := range rows {
		t, err := TransactionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}
