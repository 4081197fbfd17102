package usecases

import (
	"context"
	"fmt"
	"time"

	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

type ListTransactionsQuery struct {
	UserID            string
	Status            string
	ActivationPending *bool
	Page              int
	PageSize          int
}

type ListTransactionsResult struct {
	Items []*TransactionView
	Total int64
}

// ListTransactionsUseCase backs the operator view of the ledger.
type ListTransactionsUseCase struct {
	transactionRepo payment.TransactionRepository
	eventRepo       payment.GatewayEventRepository
	logger          logger.Interface
}

func NewListTransactionsUseCase(
	transactionRepo payment.TransactionRepository,
	eventRepo payment.GatewayEventRepository,
	logger logger.Interface,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		eventRepo:       eventRepo,
		logger:          logger,
	}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, q ListTransactionsQuery) (*ListTransactionsResult, error) {
	filter := payment.TransactionFilter{
		UserID:            q.UserID,
		ActivationPending: q.ActivationPending,
		Page:              q.Page,
		PageSize:          q.PageSize,
	}
	if q.Status != "" {
		status, err := vo.NewTransactionStatus(q.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid status filter", q.Status)
		}
		filter.Status = &status
	}

	txns, total, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	items := make([]*TransactionView, 0, len(txns))
	for _, t := range txns {
		items = append(items, ToTransactionView(t))
	}
	return &ListTransactionsResult{Items: items, Total: total}, nil
}

// GatewayEventView is one webhook delivery as recorded in the audit log.
type GatewayEventView struct {
	ID         string `json:"id"`
	InvoiceID  string `json:"invoice_id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	PaidAmount int64  `json:"paid_amount"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
	ReceivedAt string `json:"received_at"`
}

// ListEvents returns the webhook deliveries recorded for one transaction.
func (uc *ListTransactionsUseCase) ListEvents(ctx context.Context, transactionID string) ([]*GatewayEventView, error) {
	events, err := uc.eventRepo.ListByTransactionID(ctx, transactionID)
	if err != nil {
		uc.logger.Errorw("failed to list gateway events", "error", err, "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to list gateway events: %w", err)
	}
	views := make([]*GatewayEventView, 0, len(events))
	for _, e := range events {
		views = append(views, &GatewayEventView{
			ID:         e.ID,
			InvoiceID:  e.InvoiceID,
			ExternalID: e.ExternalID,
			Status:     e.Status,
			PaidAmount: e.PaidAmount,
			Outcome:    string(e.Outcome),
			Error:      e.Error,
			ReceivedAt: e.ReceivedAt.UTC().Format(time.RFC3339),
		})
	}
	return views, nil
}
