package payment

import (
	"fmt"
	"strings"
	"time"

	vo "talentika/internal/domain/payment/valueobjects"
	subvo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/id"
)

// GatewayXendit is the only gateway transactions are issued through.
const GatewayXendit = "xendit"

// Transaction is one purchase attempt in the ledger. It is created pending before the
// gateway is contacted and moves to completed or failed exactly once.
type Transaction struct {
	id            string
	userID        string
	planID        string
	amount        vo.Money
	paymentMethod vo.PaymentMethod
	billingCycle  subvo.BillingCycle
	voucherID     *string
	gateway       string
	status        vo.TransactionStatus

	externalTransactionID *string
	invoiceURL            *string

	paidAmount    *int64
	paidAt        *time.Time
	failureReason *string

	activationPending bool
	activationError   *string

	createdAt time.Time
	updatedAt time.Time
}

type NewTransactionParams struct {
	UserID        string
	PlanID        string
	Amount        vo.Money
	PaymentMethod vo.PaymentMethod
	BillingCycle  subvo.BillingCycle
	VoucherID     string
}

func NewTransaction(p NewTransactionParams) (*Transaction, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(p.PlanID) == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if p.Amount.Currency() != vo.CurrencyIDR {
		return nil, fmt.Errorf("unsupported currency: %s", p.Amount.Currency())
	}
	if !p.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", p.PaymentMethod)
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}

	var voucherID *string
	if v := strings.TrimSpace(p.VoucherID); v != "" {
		voucherID = &v
	}

	now := biztime.NowUTC()
	return &Transaction{
		id:            id.New(),
		userID:        p.UserID,
		planID:        p.PlanID,
		amount:        p.Amount,
		paymentMethod: p.PaymentMethod,
		billingCycle:  p.BillingCycle,
		voucherID:     voucherID,
		gateway:       GatewayXendit,
		status:        vo.TransactionStatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// SetExternalReference records the gateway invoice. The invoice id can only be set once.
func (t *Transaction) SetExternalReference(invoiceID, invoiceURL string) error {
	if invoiceID == "" {
		return fmt.Errorf("invoice ID is required")
	}
	if t.externalTransactionID != nil {
		if *t.externalTransactionID == invoiceID {
			return nil
		}
		return ErrExternalReferenceAlreadySet
	}
	t.externalTransactionID = &invoiceID
	if invoiceURL != "" {
		t.invoiceURL = &invoiceURL
	}
	t.updatedAt = biztime.NowUTC()
	return nil
}

// Complete moves a pending transaction to completed and flags it for subscription
// activation.
func (t *Transaction) Complete(paidAmount int64, paidAt time.Time) error {
	if !t.status.CanTransitionTo(vo.TransactionStatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, vo.TransactionStatusCompleted)
	}
	paidAt = paidAt.UTC()
	t.status = vo.TransactionStatusCompleted
	t.paidAmount = &paidAmount
	t.paidAt = &paidAt
	t.activationPending = true
	t.updatedAt = paidAt
	return nil
}

func (t *Transaction) Fail(reason string, at time.Time) error {
	if !t.status.CanTransitionTo(vo.TransactionStatusFailed) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, vo.TransactionStatusFailed)
	}
	t.status = vo.TransactionStatusFailed
	if reason != "" {
		t.failureReason = &reason
	}
	t.updatedAt = at.UTC()
	return nil
}

func (t *Transaction) MarkActivationSucceeded() {
	t.activationPending = false
	t.activationError = nil
	t.updatedAt = biztime.NowUTC()
}

func (t *Transaction) MarkActivationFailed(reason string) {
	t.activationPending = true
	t.activationError = &reason
	t.updatedAt = biztime.NowUTC()
}

// NeedsActivation is true for a completed transaction whose subscription has not been
// activated yet.
func (t *Transaction) NeedsActivation() bool {
	return t.status.IsCompleted() && t.activationPending
}

// ActivationFailed is true once an activation attempt for a completed transaction has
// returned an error. A winner still activating has the pending flag but no error yet.
func (t *Transaction) ActivationFailed() bool {
	return t.NeedsActivation() && t.activationError != nil
}

// AmountMatches reports whether the settled amount equals the invoiced amount. A zero
// paid amount means the gateway did not report one.
func (t *Transaction) AmountMatches(paidAmount int64) bool {
	return paidAmount == 0 || paidAmount == t.amount.Amount()
}

// IsOwnedBy reports whether the transaction belongs to userID.
func (t *Transaction) IsOwnedBy(userID string) bool {
	return userID != "" && t.userID == userID
}

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) UserID() string {
	return t.userID
}

func (t *Transaction) PlanID() string {
	return t.planID
}

func (t *Transaction) Amount() vo.Money {
	return t.amount
}

func (t *Transaction) PaymentMethod() vo.PaymentMethod {
	return t.paymentMethod
}

func (t *Transaction) BillingCycle() subvo.BillingCycle {
	return t.billingCycle
}

func (t *Transaction) VoucherID() *string {
	return t.voucherID
}

func (t *Transaction) Gateway() string {
	return t.gateway
}

func (t *Transaction) Status() vo.TransactionStatus {
	return t.status
}

func (t *Transaction) ExternalTransactionID() *string {
	return t.externalTransactionID
}

func (t *Transaction) InvoiceURL() *string {
	return t.invoiceURL
}

func (t *Transaction) PaidAmount() *int64 {
	return t.paidAmount
}

func (t *Transaction) PaidAt() *time.Time {
	return t.paidAt
}

func (t *Transaction) FailureReason() *string {
	return t.failureReason
}

func (t *Transaction) ActivationPending() bool {
	return t.activationPending
}

func (t *Transaction) ActivationError() *string {
	return t.activationError
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Transaction) UpdatedAt() time.Time {
	return t.updatedAt
}

// TransactionReconstructParams carries persisted state back into the aggregate.
type TransactionReconstructParams struct {
	ID                    string
	UserID                string
	PlanID                string
	Amount                vo.Money
	PaymentMethod         vo.PaymentMethod
	BillingCycle          subvo.BillingCycle
	VoucherID             *string
	Gateway               string
	Status                vo.TransactionStatus
	ExternalTransactionID *string
	InvoiceURL            *string
	PaidAmount            *int64
	PaidAt                *time.Time
	FailureReason         *string
	ActivationPending     bool
	ActivationError       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func ReconstructTransaction(p TransactionReconstructParams) *Transaction {
	return &Transaction{
		id:                    p.ID,
		userID:                p.UserID,
		planID:                p.PlanID,
		amount:                p.Amount,
		paymentMethod:         p.PaymentMethod,
		billingCycle:          p.BillingCycle,
		voucherID:             p.VoucherID,
		gateway:               p.Gateway,
		status:                p.Status,
		externalTransactionID: p.ExternalTransactionID,
		invoiceURL:            p.InvoiceURL,
		paidAmount:            p.PaidAmount,
		paidAt:                p.PaidAt,
		failureReason:         p.FailureReason,
		activationPending:     p.ActivationPending,
		activationError:       p.ActivationError,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
	}
}
