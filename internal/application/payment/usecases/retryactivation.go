package usecases

import (
	"context"
	"errors"
	"fmt"

	"talentika/internal/domain/payment"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

const defaultRetryBatchSize = 100

// RetryActivationUseCase re-runs subscription activation for completed transactions whose
// first activation attempt failed.
type RetryActivationUseCase struct {
	transactionRepo payment.TransactionRepository
	activation      *transactionActivator
	logger          logger.Interface
	batchSize       int
}

func NewRetryActivationUseCase(
	transactionRepo payment.TransactionRepository,
	activator SubscriptionActivator,
	logger logger.Interface,
	batchSize int,
) *RetryActivationUseCase {
	if batchSize <= 0 {
		batchSize = defaultRetryBatchSize
	}
	return &RetryActivationUseCase{
		transactionRepo: transactionRepo,
		activation: &transactionActivator{
			activator:       activator,
			transactionRepo: transactionRepo,
			metrics:         noopMetrics{},
			logger:          logger,
		},
		logger:    logger,
		batchSize: batchSize,
	}
}

// SetAlertNotifier sets the operator notifier (optional dependency injection)
func (uc *RetryActivationUseCase) SetAlertNotifier(notifier ActivationAlertNotifier) {
	uc.activation.notifier = notifier
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *RetryActivationUseCase) SetMetrics(m PaymentMetrics) {
	if m != nil {
		uc.activation.metrics = m
	}
}

// Execute retries one batch and returns how many transactions were activated.
func (uc *RetryActivationUseCase) Execute(ctx context.Context) (int, error) {
	pending, err := uc.transactionRepo.ListNeedingActivation(ctx, uc.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to get transactions needing activation: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	uc.logger.Infow("retrying subscription activations", "count", len(pending))

	successCount := 0
	for _, txn := range pending {
		if err := uc.activation.activate(ctx, txn, paidAtOf(txn), activationSourceRetry); err != nil {
			continue
		}
		successCount++
	}

	if successCount > 0 {
		uc.logger.Infow("subscription activations retried",
			"success", successCount,
			"total", len(pending),
		)
	}
	return successCount, nil
}

// ExecuteOne retries activation for a single transaction on operator request.
func (uc *RetryActivationUseCase) ExecuteOne(ctx context.Context, transactionID string) error {
	txn, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if errors.Is(err, payment.ErrTransactionNotFound) {
		return apperrors.NewNotFoundError("transaction not found", transactionID).WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if !txn.NeedsActivation() {
		return apperrors.NewConflictError("transaction does not need activation",
			fmt.Sprintf("status=%s activation_pending=%t", txn.Status(), txn.ActivationPending()))
	}

	if err := uc.activation.activate(ctx, txn, paidAtOf(txn), activationSourceAdmin); err != nil {
		return apperrors.NewInternalError("activation failed", err.Error()).WithCause(err)
	}
	uc.logger.Infow("activation retried by operator", "transaction_id", txn.ID())
	return nil
}
