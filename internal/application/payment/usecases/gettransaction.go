package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentika/internal/domain/payment"
	"talentika/internal/shared/authorization"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

// TransactionView is the read model returned to owners polling a checkout and to
// operators.
type TransactionView struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	PlanID                string     `json:"plan_id"`
	Amount                int64      `json:"amount"`
	Currency              string     `json:"currency"`
	PaymentMethod         string     `json:"payment_method"`
	BillingCycle          string     `json:"billing_cycle"`
	VoucherID             *string    `json:"voucher_id,omitempty"`
	Gateway               string     `json:"gateway"`
	Status                string     `json:"status"`
	ExternalTransactionID *string    `json:"external_transaction_id,omitempty"`
	InvoiceURL            *string    `json:"invoice_url,omitempty"`
	PaidAmount            *int64     `json:"paid_amount,omitempty"`
	PaidAt                *time.Time `json:"paid_at,omitempty"`
	FailureReason         *string    `json:"failure_reason,omitempty"`
	ActivationPending     bool       `json:"activation_pending"`
	ActivationError       *string    `json:"activation_error,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func ToTransactionView(t *payment.Transaction) *TransactionView {
	return &TransactionView{
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

type GetTransactionQuery struct {
	TransactionID string
	RequesterID   string
	RequesterRole authorization.UserRole
}

type GetTransactionUseCase struct {
	transactionRepo payment.TransactionRepository
	logger          logger.Interface
}

func NewGetTransactionUseCase(transactionRepo payment.TransactionRepository, logger logger.Interface) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo, logger: logger}
}

// Execute returns the transaction to its owner or an admin. Other callers get not found
// and cannot tell whether the id exists.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, q GetTransactionQuery) (*TransactionView, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, q.TransactionID)
	if errors.Is(err, payment.ErrTransactionNotFound) {
		return nil, apperrors.NewNotFoundError("transaction not found").WithCause(err)
	}
	if err != nil {
		uc.logger.Errorw("failed to get transaction", "error", err, "transaction_id", q.TransactionID)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if !q.RequesterRole.IsAdmin() && !txn.IsOwnedBy(q.RequesterID) {
		uc.logger.Warnw("transaction read denied",
			"transaction_id", q.TransactionID,
			"requester_id", q.RequesterID,
		)
		return nil, apperrors.NewNotFoundError("transaction not found")
	}

	return ToTransactionView(txn), nil
}
