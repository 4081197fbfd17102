package http

import (
	"fmt"

	"gorm.io/gorm"

	paymentUsecases "talentika/internal/application/payment/usecases"
	subscriptionUsecases "talentika/internal/application/subscription/usecases"
	"talentika/internal/infrastructure/config"
	"talentika/internal/infrastructure/email"
	infraPayment "talentika/internal/infrastructure/payment"
	"talentika/internal/shared/logger"
)

// UseCases is the application graph shared by the server and the worker.
type UseCases struct {
	CreateInvoice        *paymentUsecases.CreateInvoiceUseCase
	GetTransaction       *paymentUsecases.GetTransactionUseCase
	ListTransactions     *paymentUsecases.ListTransactionsUseCase
	HandleWebhook        *paymentUsecases.HandleWebhookUseCase
	RetryActivation      *paymentUsecases.RetryActivationUseCase
	ActivateSubscription *subscriptionUsecases.ActivateSubscriptionUseCase
	ExpireSubscriptions  *subscriptionUsecases.ExpireSubscriptionsUseCase
	GetSubscription      *subscriptionUsecases.GetSubscriptionUseCase
	ListPlans            *subscriptionUsecases.ListPlansUseCase
}

// NewUseCases wires repositories, the payment gateway and the operator notifier into
// the use cases. metrics may be nil.
func NewUseCases(gdb *gorm.DB, cfg *config.Config, log logger.Interface, metrics paymentUsecases.PaymentMetrics) (*UseCases, error) {
	repos := newRepositories(gdb)

	gateway, err := infraPayment.NewGateway(&cfg.Payment, log.Named("gateway"))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment gateway: %w", err)
	}

	activateUC := subscriptionUsecases.NewActivateSubscriptionUseCase(
		repos.subscriptionRepo,
		repos.planRepo,
		repos.profileRepo,
		repos.txManager,
		log.Named("activate_subscription"),
	)

	createInvoiceUC := paymentUsecases.NewCreateInvoiceUseCase(
		repos.transactionRepo,
		repos.planRepo,
		gateway,
		log.Named("create_invoice"),
		paymentUsecases.InvoiceConfig{
			SuccessRedirectURL: cfg.Payment.SuccessRedirectURL,
			FailureRedirectURL: cfg.Payment.FailureRedirectURL,
			Duration:           cfg.Payment.InvoiceDuration(),
		},
	)

	webhookUC := paymentUsecases.NewHandleWebhookUseCase(
		repos.transactionRepo,
		repos.eventRepo,
		gateway,
		activateUC,
		log.Named("webhook"),
	)

	retryUC := paymentUsecases.NewRetryActivationUseCase(
		repos.transactionRepo,
		activateUC,
		log.Named("retry_activation"),
		cfg.Scheduler.ActivationBatchSize,
	)

	if metrics != nil {
		createInvoiceUC.SetMetrics(metrics)
		webhookUC.SetMetrics(metrics)
		retryUC.SetMetrics(metrics)
	}
	if notifier := email.NewAlertNotifierFromConfig(&cfg.Notification, log.Named("alerts")); notifier != nil {
		webhookUC.SetAlertNotifier(notifier)
		retryUC.SetAlertNotifier(notifier)
	} else {
		log.Warnw("operator alerts disabled, activation failures are only logged")
	}

	return &UseCases{
		CreateInvoice:        createInvoiceUC,
		GetTransaction:       paymentUsecases.NewGetTransactionUseCase(repos.transactionRepo, log.Named("get_transaction")),
		ListTransactions:     paymentUsecases.NewListTransactionsUseCase(repos.transactionRepo, repos.eventRepo, log.Named("list_transactions")),
		HandleWebhook:        webhookUC,
		RetryActivation:      retryUC,
		ActivateSubscription: activateUC,
		ExpireSubscriptions: subscriptionUsecases.NewExpireSubscriptionsUseCase(
			repos.subscriptionRepo,
			repos.profileRepo,
			repos.txManager,
			log.Named("expire_subscriptions"),
		),
		GetSubscription: subscriptionUsecases.NewGetSubscriptionUseCase(repos.subscriptionRepo, log.Named("get_subscription")),
		ListPlans:       subscriptionUsecases.NewListPlansUseCase(repos.planRepo, log.Named("list_plans")),
	}, nil
}
