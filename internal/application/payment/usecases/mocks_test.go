package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"talentika/internal/application/payment/paymentgateway"
	subscriptionUsecases "talentika/internal/application/subscription/usecases"
	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	"talentika/internal/domain/subscription"
)

// memTransactionRepository mimics the conditional-update semantics of the gorm
// repository so concurrent webhook tests exercise the real race.
type memTransactionRepository struct {
	mu   sync.Mutex
	rows map[string]payment.TransactionReconstructParams

	CreateErr   error
	CompleteErr error
}

func newMemTransactionRepository() *memTransactionRepository {
	return &memTransactionRepository{rows: make(map[string]payment.TransactionReconstructParams)}
}

func (r *memTransactionRepository) snapshot(t *payment.Transaction) payment.TransactionReconstructParams {
	return payment.TransactionReconstructParams{
		ID:                    t.ID(),
		UserID:                t.UserID(),
		PlanID:                t.PlanID(),
		Amount:                t.Amount(),
		PaymentMethod:         t.PaymentMethod(),
		BillingCycle:          t.BillingCycle(),
		VoucherID:             t.VoucherID(),
		Gateway:               t.Gateway(),
		Status:                t.Status(),
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

func (r *memTransactionRepository) put(t *payment.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[t.ID()] = r.snapshot(t)
}

func (r *memTransactionRepository) Create(ctx context.Context, t *payment.Transaction) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.put(t)
	return nil
}

func (r *memTransactionRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, payment.ErrTransactionNotFound
	}
	return payment.ReconstructTransaction(row), nil
}

func (r *memTransactionRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ExternalTransactionID != nil && *row.ExternalTransactionID == externalID {
			return payment.ReconstructTransaction(row), nil
		}
	}
	return nil, payment.ErrTransactionNotFound
}

func (r *memTransactionRepository) SetExternalReference(ctx context.Context, id, externalID, invoiceURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return payment.ErrTransactionNotFound
	}
	if row.ExternalTransactionID != nil {
		if *row.ExternalTransactionID != externalID {
			return payment.ErrExternalReferenceAlreadySet
		}
		if row.InvoiceURL == nil && invoiceURL != "" {
			row.InvoiceURL = &invoiceURL
			r.rows[id] = row
		}
		return nil
	}
	row.ExternalTransactionID = &externalID
	if invoiceURL != "" {
		row.InvoiceURL = &invoiceURL
	}
	r.rows[id] = row
	return nil
}

func (r *memTransactionRepository) CompleteIfPending(ctx context.Context, id string, paidAmount int64, paidAt time.Time) (bool, error) {
	if r.CompleteErr != nil {
		return false, r.CompleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.Status != vo.TransactionStatusPending {
		return false, nil
	}
	row.Status = vo.TransactionStatusCompleted
	row.PaidAmount = &paidAmount
	row.PaidAt = &paidAt
	row.ActivationPending = true
	r.rows[id] = row
	return true, nil
}

func (r *memTransactionRepository) FailIfPending(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.Status != vo.TransactionStatusPending {
		return false, nil
	}
	row.Status = vo.TransactionStatusFailed
	row.FailureReason = &reason
	r.rows[id] = row
	return true, nil
}

func (r *memTransactionRepository) MarkActivationSucceeded(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[id]
	row.ActivationPending = false
	row.ActivationError = nil
	r.rows[id] = row
	return nil
}

func (r *memTransactionRepository) MarkActivationFailed(ctx context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[id]
	row.ActivationPending = true
	row.ActivationError = &reason
	r.rows[id] = row
	return nil
}

func (r *memTransactionRepository) ListNeedingActivation(ctx context.Context, limit int) ([]*payment.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*payment.Transaction
	for _, row := range r.rows {
		if row.Status == vo.TransactionStatusCompleted && row.ActivationPending {
			out = append(out, payment.ReconstructTransaction(row))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memTransactionRepository) List(ctx context.Context, filter payment.TransactionFilter) ([]*payment.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*payment.Transaction
	for _, row := range r.rows {
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		if filter.UserID != "" && row.UserID != filter.UserID {
			continue
		}
		out = append(out, payment.ReconstructTransaction(row))
	}
	return out, int64(len(out)), nil
}

func (r *memTransactionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type mockGatewayEventRepository struct {
	mu     sync.Mutex
	events []*payment.GatewayEvent
}

func (m *mockGatewayEventRepository) Create(ctx context.Context, e *payment.GatewayEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *mockGatewayEventRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]*payment.GatewayEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*payment.GatewayEvent
	for _, e := range m.events {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockGatewayEventRepository) all() []*payment.GatewayEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*payment.GatewayEvent(nil), m.events...)
}

type mockGateway struct {
	CreateInvoiceFunc  func(ctx context.Context, req paymentgateway.CreateInvoiceRequest) (*paymentgateway.CreateInvoiceResponse, error)
	VerifyCallbackFunc func(token string) error
}

func (m *mockGateway) CreateInvoice(ctx context.Context, req paymentgateway.CreateInvoiceRequest) (*paymentgateway.CreateInvoiceResponse, error) {
	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, req)
	}
	return &paymentgateway.CreateInvoiceResponse{
		InvoiceID:  "inv_" + req.ExternalID,
		InvoiceURL: "https://checkout.example/inv_" + req.ExternalID,
		Status:     paymentgateway.InvoiceStatusPending,
	}, nil
}

func (m *mockGateway) VerifyCallback(token string) error {
	if m.VerifyCallbackFunc != nil {
		return m.VerifyCallbackFunc(token)
	}
	return nil
}

type mockActivator struct {
	mu          sync.Mutex
	calls       []subscriptionUsecases.ActivateSubscriptionCommand
	ExecuteFunc func(ctx context.Context, cmd subscriptionUsecases.ActivateSubscriptionCommand) (*subscriptionUsecases.ActivateSubscriptionResult, error)
}

func (m *mockActivator) Execute(ctx context.Context, cmd subscriptionUsecases.ActivateSubscriptionCommand) (*subscriptionUsecases.ActivateSubscriptionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &subscriptionUsecases.ActivateSubscriptionResult{Applied: true}, nil
}

func (m *mockActivator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockPlanRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*subscription.Plan, error)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, subscription.ErrPlanNotFound
}

func (m *mockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	return nil, nil
}

func (m *mockPlanRepository) Upsert(ctx context.Context, plan *subscription.Plan) error {
	return nil
}

type mockNotifier struct {
	alerts chan ActivationFailureAlert
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{alerts: make(chan ActivationFailureAlert, 8)}
}

func (m *mockNotifier) NotifyActivationFailure(ctx context.Context, alert ActivationFailureAlert) error {
	m.alerts <- alert
	return nil
}

type recordingMetrics struct {
	mu          sync.Mutex
	invoices    []string
	webhooks    []string
	activations []string
}

func (m *recordingMetrics) ObserveInvoice(o string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = append(m.invoices, o)
}

func (m *recordingMetrics) ObserveWebhook(o string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhooks = append(m.webhooks, o)
}

func (m *recordingMetrics) ObserveActivation(o string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activations = append(m.activations, o)
}

func emptyFilter() payment.TransactionFilter {
	return payment.TransactionFilter{}
}
