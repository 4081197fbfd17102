package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	subvo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/authorization"
	apperrors "talentika/internal/shared/errors"
	"talentika/internal/shared/logger"
)

func TestGetTransaction(t *testing.T) {
	repo := newMemTransactionRepository()
	txn, err := payment.NewTransaction(payment.NewTransactionParams{
		UserID:        "owner",
		PlanID:        "premium-monthly",
		Amount:        vo.NewIDR(99000),
		PaymentMethod: vo.PaymentMethodQRIS,
		BillingCycle:  subvo.BillingCycleMonthly,
	})
	require.NoError(t, err)
	repo.put(txn)

	uc := NewGetTransactionUseCase(repo, logger.NewNopLogger())

	tests := []struct {
		name     string
		query    GetTransactionQuery
		notFound bool
	}{
		{
			name:  "owner",
			query: GetTransactionQuery{TransactionID: txn.ID(), RequesterID: "owner", RequesterRole: authorization.RoleUser},
		},
		{
			name:  "admin",
			query: GetTransactionQuery{TransactionID: txn.ID(), RequesterID: "ops", RequesterRole: authorization.RoleAdmin},
		},
		{
			name:     "other user",
			query:    GetTransactionQuery{TransactionID: txn.ID(), RequesterID: "intruder", RequesterRole: authorization.RoleUser},
			notFound: true,
		},
		{
			name:     "anonymous",
			query:    GetTransactionQuery{TransactionID: txn.ID(), RequesterRole: authorization.RoleUser},
			notFound: true,
		},
		{
			name:     "missing",
			query:    GetTransactionQuery{TransactionID: "nope", RequesterID: "owner", RequesterRole: authorization.RoleUser},
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := uc.Execute(context.Background(), tt.query)
			if tt.notFound {
				assert.True(t, apperrors.IsNotFoundError(err))
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, txn.ID(), view.ID)
			assert.Equal(t, "pending", view.Status)
			assert.Equal(t, int64(99000), view.Amount)
			assert.Equal(t, "IDR", view.Currency)
			assert.Equal(t, "qris", view.PaymentMethod)
		})
	}
}

func TestListTransactions_FiltersAndEvents(t *testing.T) {
	repo := newMemTransactionRepository()
	events := &mockGatewayEventRepository{}
	completed := completedTransaction(t, repo, "user-1", "")
	completedTransaction(t, repo, "user-2", "boom")

	ev := payment.NewGatewayEvent(completed.ID(), "inv_1", completed.ID(), "PAID", 99000, []byte(`{}`))
	ev.Outcome = payment.GatewayEventProcessed
	require.NoError(t, events.Create(context.Background(), ev))

	uc := NewListTransactionsUseCase(repo, events, logger.NewNopLogger())

	res, err := uc.Execute(context.Background(), ListTransactionsQuery{UserID: "user-1", Status: "completed"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, completed.ID(), res.Items[0].ID)
	assert.Equal(t, int64(1), res.Total)

	_, err = uc.Execute(context.Background(), ListTransactionsQuery{Status: "refunded"})
	assert.True(t, apperrors.IsValidationError(err))

	views, err := uc.ListEvents(context.Background(), completed.ID())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "processed", views[0].Outcome)
	assert.Equal(t, "PAID", views[0].Status)
}
