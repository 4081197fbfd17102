package usecases

import (
	"context"
	"time"

	subscriptionUsecases "talentika/internal/application/subscription/usecases"
)

// SubscriptionActivator is satisfied by subscriptionUsecases.ActivateSubscriptionUseCase.
type SubscriptionActivator interface {
	Execute(ctx context.Context, cmd subscriptionUsecases.ActivateSubscriptionCommand) (*subscriptionUsecases.ActivateSubscriptionResult, error)
}

// ActivationAlertNotifier tells operators that a paid transaction did not produce a
// subscription.
type ActivationAlertNotifier interface {
	NotifyActivationFailure(ctx context.Context, alert ActivationFailureAlert) error
}

type ActivationFailureAlert struct {
	TransactionID string
	UserID        string
	PlanID        string
	Amount        int64
	Currency      string
	PaidAt        time.Time
	Source        string
	Error         string
}

// PaymentMetrics records outcomes of the payment flows. Outcome labels are low
// cardinality strings such as "created" or "gateway_error".
type PaymentMetrics interface {
	ObserveInvoice(outcome string)
	ObserveWebhook(outcome string)
	ObserveActivation(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveInvoice(string)    {}
func (noopMetrics) ObserveWebhook(string)    {}
func (noopMetrics) ObserveActivation(string) {}
