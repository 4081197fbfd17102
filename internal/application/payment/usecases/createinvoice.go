package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentika/internal/application/payment/paymentgateway"
	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	"talentika/internal/domain/subscription"
	subvo "talentika/internal/domain/subscription/valueobjects"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

type CreateInvoiceCommand struct {
	UserID        string
	PlanID        string
	Amount        int64
	PaymentMethod string
	BillingCycle  string
	VoucherID     string
	PayerEmail    string
}

type CreateInvoiceResult struct {
	TransactionID string
	InvoiceID     string
	InvoiceURL    string
}

type InvoiceConfig struct {
	SuccessRedirectURL string
	FailureRedirectURL string
	Duration           time.Duration
}

// CreateInvoiceUseCase records a pending transaction and then asks the gateway for a
// hosted invoice that references it.
type CreateInvoiceUseCase struct {
	transactionRepo payment.TransactionRepository
	planRepo        subscription.PlanRepository
	gateway         paymentgateway.PaymentGateway
	metrics         PaymentMetrics
	logger          logger.Interface
	config          InvoiceConfig
}

func NewCreateInvoiceUseCase(
	transactionRepo payment.TransactionRepository,
	planRepo subscription.PlanRepository,
	gateway paymentgateway.PaymentGateway,
	logger logger.Interface,
	config InvoiceConfig,
) *CreateInvoiceUseCase {
	if config.Duration <= 0 {
		config.Duration = 24 * time.Hour
	}
	return &CreateInvoiceUseCase{
		transactionRepo: transactionRepo,
		planRepo:        planRepo,
		gateway:         gateway,
		metrics:         noopMetrics{},
		logger:          logger,
		config:          config,
	}
}

// SetMetrics sets the metrics recorder (optional dependency injection)
func (uc *CreateInvoiceUseCase) SetMetrics(m PaymentMetrics) {
	if m != nil {
		uc.metrics = m
	}
}

func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, cmd CreateInvoiceCommand) (*CreateInvoiceResult, error) {
	if cmd.Amount <= 0 {
		uc.metrics.ObserveInvoice("invalid")
		return nil, apperrors.NewValidationError("amount must be a positive whole rupiah value")
	}
	method, err := vo.NewPaymentMethod(cmd.PaymentMethod)
	if err != nil {
		uc.metrics.ObserveInvoice("invalid")
		return nil, apperrors.NewValidationError("invalid payment method", cmd.PaymentMethod)
	}
	cycle, err := subvo.NewBillingCycle(cmd.BillingCycle)
	if err != nil {
		uc.metrics.ObserveInvoice("invalid")
		return nil, apperrors.NewValidationError("invalid billing cycle", cmd.BillingCycle)
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil && !errors.Is(err, subscription.ErrPlanNotFound) {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil || !plan.IsActive() {
		uc.logger.Warnw("invoice requested for unknown plan", "plan_id", cmd.PlanID, "user_id", cmd.UserID)
		uc.metrics.ObserveInvoice("plan_not_found")
		return nil, apperrors.NewNotFoundError("plan not found", cmd.PlanID).WithCause(subscription.ErrPlanNotFound)
	}

	txn, err := payment.NewTransaction(payment.NewTransactionParams{
		UserID:        cmd.UserID,
		PlanID:        plan.ID(),
		Amount:        vo.NewIDR(cmd.Amount),
		PaymentMethod: method,
		BillingCycle:  cycle,
		VoucherID:     cmd.VoucherID,
	})
	if err != nil {
		uc.metrics.ObserveInvoice("invalid")
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		uc.logger.Errorw("failed to save transaction", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	resp, err := uc.gateway.CreateInvoice(ctx, paymentgateway.CreateInvoiceRequest{
		ExternalID:         txn.ID(),
		Amount:             txn.Amount().Amount(),
		Currency:           txn.Amount().Currency(),
		Description:        invoiceDescription(plan.Name(), cycle, cmd.Amount),
		PaymentMethod:      method.String(),
		PayerEmail:         cmd.PayerEmail,
		SuccessRedirectURL: uc.config.SuccessRedirectURL,
		FailureRedirectURL: uc.config.FailureRedirectURL,
		Duration:           uc.config.Duration,
	})
	if err != nil {
		uc.logger.Errorw("failed to create invoice in gateway",
			"error", err,
			"transaction_id", txn.ID(),
		)
		if errors.Is(err, paymentgateway.ErrGatewayMisconfigured) {
			uc.metrics.ObserveInvoice("gateway_misconfigured")
			return nil, apperrors.NewUpstreamError("payment gateway is not configured").WithCause(err)
		}
		uc.metrics.ObserveInvoice("gateway_error")
		return nil, apperrors.NewUpstreamError("payment gateway unavailable").WithCause(err)
	}

	if err := txn.SetExternalReference(resp.InvoiceID, resp.InvoiceURL); err != nil {
		uc.logger.Errorw("gateway returned an unusable invoice", "error", err, "transaction_id", txn.ID())
		uc.metrics.ObserveInvoice("gateway_error")
		return nil, apperrors.NewUpstreamError("payment gateway returned an invalid invoice").WithCause(err)
	}

	if err := uc.transactionRepo.SetExternalReference(ctx, txn.ID(), resp.InvoiceID, resp.InvoiceURL); err != nil {
		uc.logger.Errorw("failed to store gateway invoice reference",
			"error", err,
			"transaction_id", txn.ID(),
			"invoice_id", resp.InvoiceID,
		)
		return nil, fmt.Errorf("failed to store invoice reference: %w", err)
	}

	uc.metrics.ObserveInvoice("created")
	uc.logger.Infow("invoice created successfully",
		"transaction_id", txn.ID(),
		"invoice_id", resp.InvoiceID,
		"user_id", cmd.UserID,
		"plan_id", plan.ID(),
		"amount", cmd.Amount,
	)

	return &CreateInvoiceResult{
		TransactionID: txn.ID(),
		InvoiceID:     resp.InvoiceID,
		InvoiceURL:    resp.InvoiceURL,
	}, nil
}
