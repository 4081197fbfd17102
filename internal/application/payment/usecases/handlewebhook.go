package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentika/internal/application/payment/paymentgateway"
	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	"talentika/internal/shared/biztime"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/id"
	"talentika/internal/shared/logger"
)

// WebhookCommand is one invoice callback as delivered by the gateway.
type WebhookCommand struct {
	CallbackToken string
	InvoiceID     string
	ExternalID    string
	Status        string
	PaidAmount    int64
	PaidAt        *time.Time
	Payload       []byte
}

type WebhookResult struct {
	TransactionID string
	Status        vo.TransactionStatus
	// Transitioned is true only for the delivery that moved the transaction out of pending.
	Transitioned bool
	Activated    bool
}

// HandleWebhookUseCase reconciles gateway callbacks with the ledger. Deliveries may be
// duplicated, reordered or concurrent; only the one whose conditional update wins runs
// the subscription activator.
type HandleWebhookUseCase struct {
	transactionRepo payment.TransactionRepository
	eventRepo       payment.GatewayEventRepository
	gateway         paymentgateway.PaymentGateway
	activation      *transactionActivator
	metrics         PaymentMetrics
	logger          logger.Interface
	now             func() time.Time
}

func NewHandleWebhookUseCase(
	transactionRepo payment.TransactionRepository,
	eventRepo payment.GatewayEventRepository,
	gateway paymentgateway.PaymentGateway,
	activator SubscriptionActivator,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		transactionRepo: transactionRepo,
		eventRepo:       eventRepo,
		gateway:         gateway,
		activation: &transactionActivator{
			activator:       activator,
			transactionRepo: transactionRepo,
			metrics:         noopMetrics{},
			logger:          logger,
		},
		metrics: noopMetrics{},
		logger:  logger,
		now:     biztime.NowUTC,
	}
}

// SetAlertNotifier sets the operator notifier (optional dependency injection)
func (uc *HandleWebhookUseCase) SetAlertNotifier(notifier ActivationAlertNotifier) {
	uc.activation.notifier = notifier
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *HandleWebhookUseCase) SetMetrics(m PaymentMetrics) {
	if m != nil {
		uc.metrics = m
		uc.activation.metrics = m
	}
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd WebhookCommand) (*WebhookResult, error) {
	if err := uc.gateway.VerifyCallback(cmd.CallbackToken); err != nil {
		uc.logger.Warnw("rejected webhook with invalid callback token", "external_id", cmd.ExternalID)
		uc.metrics.ObserveWebhook("unauthorized")
		return nil, apperrors.NewUnauthorizedError("invalid callback token").WithCause(payment.ErrInvalidCallbackToken)
	}

	if cmd.ExternalID == "" {
		uc.metrics.ObserveWebhook("malformed")
		return nil, apperrors.NewValidationError("external_id is required").WithCause(payment.ErrMalformedWebhook)
	}

	txn, err := uc.resolveTransaction(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrTransactionNotFound):
			uc.logger.Warnw("webhook for unknown transaction",
				"external_id", cmd.ExternalID,
				"invoice_id", cmd.InvoiceID,
			)
			uc.metrics.ObserveWebhook("not_found")
			return nil, apperrors.NewNotFoundError("transaction not found", cmd.ExternalID).WithCause(err)
		case errors.Is(err, payment.ErrReferenceMismatch):
			uc.logger.Warnw("webhook invoice does not match transaction",
				"external_id", cmd.ExternalID,
				"invoice_id", cmd.InvoiceID,
			)
			uc.metrics.ObserveWebhook("malformed")
			return nil, apperrors.NewValidationError("invoice does not match transaction").WithCause(err)
		default:
			uc.logger.Errorw("failed to resolve webhook transaction", "error", err, "external_id", cmd.ExternalID)
			uc.metrics.ObserveWebhook("error")
			return nil, fmt.Errorf("failed to resolve transaction: %w", err)
		}
	}

	event := payment.NewGatewayEvent(txn.ID(), cmd.InvoiceID, cmd.ExternalID, cmd.Status, cmd.PaidAmount, cmd.Payload)

	target, err := paymentgateway.MapInvoiceStatus(cmd.Status)
	if err != nil {
		uc.logger.Warnw("webhook with unknown status", "status", cmd.Status, "transaction_id", txn.ID())
		uc.metrics.ObserveWebhook("unknown_status")
		uc.recordEvent(ctx, event, payment.GatewayEventRejected, err)
		return nil, apperrors.NewValidationError("unknown status", cmd.Status).WithCause(err)
	}

	result, err := uc.apply(ctx, txn, target, cmd)
	if err != nil {
		uc.metrics.ObserveWebhook("error")
		uc.recordEvent(ctx, event, payment.GatewayEventFailed, err)
		return nil, err
	}

	outcome := payment.GatewayEventIgnored
	if result.Transitioned || result.Activated {
		outcome = payment.GatewayEventProcessed
	}
	uc.metrics.ObserveWebhook(string(outcome))
	uc.recordEvent(ctx, event, outcome, nil)
	return result, nil
}

func (uc *HandleWebhookUseCase) apply(ctx context.Context, txn *payment.Transaction, target vo.TransactionStatus, cmd WebhookCommand) (*WebhookResult, error) {
	result := &WebhookResult{TransactionID: txn.ID(), Status: txn.Status()}

	switch target {
	case vo.TransactionStatusPending:
		uc.logger.Debugw("pending webhook ignored", "transaction_id", txn.ID())
		return result, nil

	case vo.TransactionStatusFailed:
		if err := txn.Fail(cmd.Status, uc.now()); err != nil {
			uc.logger.Infow("failure webhook for settled transaction ignored",
				"transaction_id", txn.ID(),
				"current_status", txn.Status(),
			)
			return result, nil
		}
		won, err := uc.transactionRepo.FailIfPending(ctx, txn.ID(), cmd.Status, txn.UpdatedAt())
		if err != nil {
			uc.logger.Errorw("failed to mark transaction failed", "error", err, "transaction_id", txn.ID())
			return nil, fmt.Errorf("failed to update transaction: %w", err)
		}
		if won {
			result.Status = vo.TransactionStatusFailed
			result.Transitioned = true
			uc.logger.Infow("transaction failed", "transaction_id", txn.ID(), "reason", cmd.Status)
		} else {
			uc.logger.Infow("failure webhook lost the race to another delivery", "transaction_id", txn.ID())
		}
		return result, nil
	}

	paidAmount := cmd.PaidAmount
	if !txn.AmountMatches(paidAmount) {
		uc.logger.Errorw("webhook paid amount differs from invoiced amount",
			"transaction_id", txn.ID(),
			"expected_amount", txn.Amount().Amount(),
			"paid_amount", paidAmount,
		)
	}
	if paidAmount == 0 {
		paidAmount = txn.Amount().Amount()
	}
	paidAt := uc.now()
	if cmd.PaidAt != nil && !cmd.PaidAt.IsZero() {
		paidAt = cmd.PaidAt.UTC()
	}

	if err := txn.Complete(paidAmount, paidAt); err != nil {
		return uc.redelivered(ctx, result, txn)
	}

	won, err := uc.transactionRepo.CompleteIfPending(ctx, txn.ID(), *txn.PaidAmount(), *txn.PaidAt())
	if err != nil {
		uc.logger.Errorw("failed to complete transaction", "error", err, "transaction_id", txn.ID())
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if won {
		result.Status = vo.TransactionStatusCompleted
		result.Transitioned = true
		uc.logger.Infow("transaction completed",
			"transaction_id", txn.ID(),
			"user_id", txn.UserID(),
			"paid_amount", paidAmount,
		)
		result.Activated = uc.activation.activate(ctx, txn, paidAt, activationSourceWebhook) == nil
		return result, nil
	}

	// Lost the race. Reload to see where the transaction ended up.
	current, err := uc.transactionRepo.GetByID(ctx, txn.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction: %w", err)
	}
	return uc.redelivered(ctx, result, current)
}

// redelivered handles a settlement webhook for a transaction that is no longer pending.
// Only a completed transaction whose activation already failed is retried.
func (uc *HandleWebhookUseCase) redelivered(ctx context.Context, result *WebhookResult, current *payment.Transaction) (*WebhookResult, error) {
	result.Status = current.Status()
	if current.ActivationFailed() {
		uc.logger.Infow("redelivered webhook retrying pending activation", "transaction_id", current.ID())
		result.Activated = uc.activation.activate(ctx, current, paidAtOf(current), activationSourceWebhook) == nil
		return result, nil
	}

	uc.logger.Infow("duplicate webhook ignored",
		"transaction_id", current.ID(),
		"current_status", current.Status(),
	)
	return result, nil
}

// resolveTransaction finds the ledger row a webhook refers to. The gateway invoice id is
// tried first, then external_id as our transaction id, then external_id as an invoice id.
func (uc *HandleWebhookUseCase) resolveTransaction(ctx context.Context, cmd WebhookCommand) (*payment.Transaction, error) {
	if cmd.InvoiceID != "" {
		txn, err := uc.transactionRepo.GetByExternalID(ctx, cmd.InvoiceID)
		if err != nil && !errors.Is(err, payment.ErrTransactionNotFound) {
			return nil, err
		}
		if txn != nil {
			if id.IsValid(cmd.ExternalID) && id.Normalize(cmd.ExternalID) != txn.ID() {
				return nil, payment.ErrReferenceMismatch
			}
			return txn, nil
		}
	}

	if id.IsValid(cmd.ExternalID) {
		txn, err := uc.transactionRepo.GetByID(ctx, id.Normalize(cmd.ExternalID))
		if err != nil && !errors.Is(err, payment.ErrTransactionNotFound) {
			return nil, err
		}
		if txn != nil {
			return uc.checkReference(ctx, txn, cmd.InvoiceID)
		}
	}

	txn, err := uc.transactionRepo.GetByExternalID(ctx, cmd.ExternalID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// checkReference rejects a webhook whose invoice id contradicts the stored one and
// backfills the reference when invoice creation could not store it.
func (uc *HandleWebhookUseCase) checkReference(ctx context.Context, txn *payment.Transaction, invoiceID string) (*payment.Transaction, error) {
	if invoiceID == "" {
		return txn, nil
	}
	stored := txn.ExternalTransactionID()
	if err := txn.SetExternalReference(invoiceID, ""); err != nil {
		if errors.Is(err, payment.ErrExternalReferenceAlreadySet) {
			return nil, payment.ErrReferenceMismatch
		}
		return nil, err
	}
	if stored != nil {
		return txn, nil
	}
	if err := uc.transactionRepo.SetExternalReference(ctx, txn.ID(), invoiceID, ""); err != nil {
		uc.logger.Warnw("failed to backfill invoice reference",
			"transaction_id", txn.ID(),
			"invoice_id", invoiceID,
			"error", err,
		)
	}
	return txn, nil
}

func (uc *HandleWebhookUseCase) recordEvent(ctx context.Context, event *payment.GatewayEvent, outcome payment.GatewayEventOutcome, cause error) {
	if uc.eventRepo == nil {
		return
	}
	event.Outcome = outcome
	if cause != nil {
		event.Error = cause.Error()
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Warnw("failed to record gateway event",
			"transaction_id", event.TransactionID,
			"error", err,
		)
	}
}
