package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "talentika/internal/domain/payment/valueobjects"
	subvo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/id"
)

func validParams() NewTransactionParams {
	return NewTransactionParams{
		UserID:        "user-1",
		PlanID:        "premium-monthly",
		Amount:        vo.NewIDR(99000),
		PaymentMethod: vo.PaymentMethodQRIS,
		BillingCycle:  subvo.BillingCycleMonthly,
	}
}

func pendingTransaction(t *testing.T) *Transaction {
	t.Helper()
	txn, err := NewTransaction(validParams())
	require.NoError(t, err)
	return txn
}

func TestNewTransaction_Valid(t *testing.T) {
	params := validParams()
	params.VoucherID = "  HEMAT10 "

	txn, err := NewTransaction(params)

	require.NoError(t, err)
	assert.True(t, id.IsValid(txn.ID()))
	assert.Equal(t, vo.TransactionStatusPending, txn.Status())
	assert.Equal(t, GatewayXendit, txn.Gateway())
	assert.Nil(t, txn.ExternalTransactionID())
	require.NotNil(t, txn.VoucherID())
	assert.Equal(t, "HEMAT10", *txn.VoucherID())
	assert.False(t, txn.ActivationPending())
}

func TestNewTransaction_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *NewTransactionParams)
	}{
		{"missing user", func(p *NewTransactionParams) { p.UserID = " " }},
		{"missing plan", func(p *NewTransactionParams) { p.PlanID = "" }},
		{"zero amount", func(p *NewTransactionParams) { p.Amount = vo.NewIDR(0) }},
		{"negative amount", func(p *NewTransactionParams) { p.Amount = vo.NewIDR(-5) }},
		{"foreign currency", func(p *NewTransactionParams) { p.Amount = vo.NewMoney(10, "USD") }},
		{"bad method", func(p *NewTransactionParams) { p.PaymentMethod = "cash" }},
		{"bad cycle", func(p *NewTransactionParams) { p.BillingCycle = "weekly" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewTransaction(p)
			assert.Error(t, err)
		})
	}
}

func TestTransaction_SetExternalReferenceOnce(t *testing.T) {
	txn := pendingTransaction(t)

	require.NoError(t, txn.SetExternalReference("inv_1", "https://checkout.example/inv_1"))
	require.NoError(t, txn.SetExternalReference("inv_1", ""))

	err := txn.SetExternalReference("inv_2", "")
	assert.True(t, errors.Is(err, ErrExternalReferenceAlreadySet))
	assert.Equal(t, "inv_1", *txn.ExternalTransactionID())
	assert.Equal(t, "https://checkout.example/inv_1", *txn.InvoiceURL())
}

func TestTransaction_CompleteIsTerminal(t *testing.T) {
	txn := pendingTransaction(t)
	paidAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, txn.Complete(99000, paidAt))

	assert.Equal(t, vo.TransactionStatusCompleted, txn.Status())
	assert.True(t, txn.NeedsActivation())
	assert.Equal(t, paidAt, *txn.PaidAt())

	assert.ErrorIs(t, txn.Complete(99000, paidAt), ErrInvalidTransition)
	assert.ErrorIs(t, txn.Fail("expired", paidAt), ErrInvalidTransition)
	assert.Equal(t, vo.TransactionStatusCompleted, txn.Status())
}

func TestTransaction_FailIsTerminal(t *testing.T) {
	txn := pendingTransaction(t)

	require.NoError(t, txn.Fail("EXPIRED", time.Now()))

	assert.Equal(t, vo.TransactionStatusFailed, txn.Status())
	assert.False(t, txn.NeedsActivation())
	assert.ErrorIs(t, txn.Complete(99000, time.Now()), ErrInvalidTransition)
}

func TestTransaction_ActivationMarkers(t *testing.T) {
	txn := pendingTransaction(t)
	require.NoError(t, txn.Complete(99000, time.Now()))
	assert.False(t, txn.ActivationFailed())

	txn.MarkActivationFailed("plan lookup failed")
	assert.True(t, txn.NeedsActivation())
	assert.True(t, txn.ActivationFailed())
	assert.Equal(t, "plan lookup failed", *txn.ActivationError())

	txn.MarkActivationSucceeded()
	assert.False(t, txn.NeedsActivation())
	assert.Nil(t, txn.ActivationError())
}

func TestTransaction_AmountMatches(t *testing.T) {
	txn := pendingTransaction(t)
	assert.True(t, txn.AmountMatches(99000))
	assert.True(t, txn.AmountMatches(0))
	assert.False(t, txn.AmountMatches(50000))
}
