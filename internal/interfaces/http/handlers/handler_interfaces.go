package handlers

import (
	"context"

	paymentUsecases "talentika/internal/application/payment/usecases"
	subscriptionUsecases "talentika/internal/application/subscription/usecases"
)

type createInvoiceUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.CreateInvoiceCommand) (*paymentUsecases.CreateInvoiceResult, error)
}

type getTransactionUseCase interface {
	Execute(ctx context.Context, q paymentUsecases.GetTransactionQuery) (*paymentUsecases.TransactionView, error)
}

type handleWebhookUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.WebhookCommand) (*paymentUsecases.WebhookResult, error)
}

type listTransactionsUseCase interface {
	Execute(ctx context.Context, q paymentUsecases.ListTransactionsQuery) (*paymentUsecases.ListTransactionsResult, error)
	ListEvents(ctx context.Context, transactionID string) ([]*paymentUsecases.GatewayEventView, error)
}

type retryActivationUseCase interface {
	ExecuteOne(ctx context.Context, transactionID string) error
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, userID string) (*subscriptionUsecases.SubscriptionView, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, activeOnly bool) ([]*subscriptionUsecases.PlanView, error)
}
