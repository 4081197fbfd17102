package usecases

import (
	"context"
	"fmt"
	"time"

	subscriptionUsecases "talentika/internal/application/subscription/usecases"
	"talentika/internal/domain/payment"
	"talentika/internal/shared/goroutine"
	"talentika/internal/shared/logger"
)

const (
	activationSourceWebhook = "webhook"
	activationSourceRetry   = "retry"
	activationSourceAdmin   = "admin"
)

// transactionActivator runs the subscription activator for one completed transaction and
// keeps the activation_pending marker in step with the outcome.
type transactionActivator struct {
	activator       SubscriptionActivator
	transactionRepo payment.TransactionRepository
	notifier        ActivationAlertNotifier
	metrics         PaymentMetrics
	logger          logger.Interface
}

func (a *transactionActivator) activate(ctx context.Context, txn *payment.Transaction, paidAt time.Time, source string) error {
	result, err := a.activator.Execute(ctx, subscriptionUsecases.ActivateSubscriptionCommand{
		UserID:        txn.UserID(),
		PlanID:        txn.PlanID(),
		BillingCycle:  txn.BillingCycle(),
		AmountPaid:    txn.Amount().Amount(),
		PaymentMethod: txn.PaymentMethod().String(),
		TransactionID: txn.ID(),
		PaidAt:        paidAt,
	})
	if err != nil {
		a.logger.Errorw("subscription activation failed, transaction left pending activation",
			"error", err,
			"transaction_id", txn.ID(),
			"user_id", txn.UserID(),
			"source", source,
		)
		a.metrics.ObserveActivation("failed")
		txn.MarkActivationFailed(err.Error())
		if markErr := a.transactionRepo.MarkActivationFailed(ctx, txn.ID(), err.Error()); markErr != nil {
			a.logger.Warnw("failed to record activation error",
				"transaction_id", txn.ID(),
				"error", markErr,
			)
		}
		a.alert(ctx, txn, paidAt, source, err)
		return err
	}

	txn.MarkActivationSucceeded()
	if err := a.transactionRepo.MarkActivationSucceeded(ctx, txn.ID()); err != nil {
		a.logger.Errorw("failed to clear activation pending flag",
			"transaction_id", txn.ID(),
			"error", err,
		)
		return fmt.Errorf("failed to clear activation pending flag: %w", err)
	}

	if result.Applied {
		a.metrics.ObserveActivation("activated")
	} else {
		a.metrics.ObserveActivation("superseded")
	}
	return nil
}

func (a *transactionActivator) alert(ctx context.Context, txn *payment.Transaction, paidAt time.Time, source string, cause error) {
	if a.notifier == nil {
		return
	}
	alert := ActivationFailureAlert{
		TransactionID: txn.ID(),
		UserID:        txn.UserID(),
		PlanID:        txn.PlanID(),
		Amount:        txn.Amount().Amount(),
		Currency:      txn.Amount().Currency(),
		PaidAt:        paidAt,
		Source:        source,
		Error:         cause.Error(),
	}
	goroutine.Detach(ctx, a.logger, "activation-failure-alert", 30*time.Second, func(notifyCtx context.Context) {
		if err := a.notifier.NotifyActivationFailure(notifyCtx, alert); err != nil {
			a.logger.Warnw("failed to notify operators about activation failure",
				"transaction_id", alert.TransactionID,
				"error", err,
			)
		}
	})
}

func paidAtOf(txn *payment.Transaction) time.Time {
	if txn.PaidAt() != nil {
		return *txn.PaidAt()
	}
	return txn.UpdatedAt()
}
