package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "talentika/internal/domain/subscription/valueobjects"
)

func activationParams(paidAt time.Time) ActivationParams {
	return ActivationParams{
		UserID:        "user-1",
		PlanID:        "premium-monthly",
		PlanType:      "premium",
		BillingCycle:  vo.BillingCycleMonthly,
		AmountPaid:    99000,
		PaymentMethod: "qris",
		TransactionID: "txn-1",
		PaidAt:        paidAt,
	}
}

func TestComputeWindow(t *testing.T) {
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	start, end := ComputeWindow(paidAt)
	assert.Equal(t, paidAt, start)
	assert.Equal(t, time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC), end)
}

func TestNewActivation_DeterministicWindow(t *testing.T) {
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	first, err := NewActivation(activationParams(paidAt))
	require.NoError(t, err)
	replay, err := NewActivation(activationParams(paidAt))
	require.NoError(t, err)

	assert.Equal(t, first.StartsAt(), replay.StartsAt())
	assert.Equal(t, first.ExpiresAt(), replay.ExpiresAt())
	assert.Equal(t, vo.StatusActive, first.Status())
}

func TestNewActivation_YearlyStillGetsOneMonth(t *testing.T) {
	paidAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := activationParams(paidAt)
	p.BillingCycle = vo.BillingCycleYearly

	sub, err := NewActivation(p)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), sub.ExpiresAt())
}

func TestNewActivation_Invalid(t *testing.T) {
	p := activationParams(time.Time{})
	_, err := NewActivation(p)
	assert.Error(t, err)

	p = activationParams(time.Now())
	p.TransactionID = ""
	_, err = NewActivation(p)
	assert.Error(t, err)
}

func TestSubscription_Supersedes(t *testing.T) {
	older, _ := NewActivation(activationParams(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	newer, _ := NewActivation(activationParams(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	assert.True(t, newer.Supersedes(older))
	assert.False(t, older.Supersedes(newer))
	assert.True(t, older.Supersedes(older))
	assert.True(t, older.Supersedes(nil))
}

func TestSubscription_ReadTimeExpiry(t *testing.T) {
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sub, err := NewActivation(activationParams(paidAt))
	require.NoError(t, err)

	assert.True(t, sub.IsEntitled(paidAt.Add(24*time.Hour)))
	assert.False(t, sub.IsEntitled(sub.ExpiresAt()))
	assert.Equal(t, vo.StatusInactive, sub.EffectiveStatus(sub.ExpiresAt().Add(time.Second)))
	assert.Equal(t, vo.StatusActive, sub.Status())
}

func TestSubscription_Expire(t *testing.T) {
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sub, _ := NewActivation(activationParams(paidAt))

	assert.False(t, sub.Expire(paidAt.Add(time.Hour)))
	assert.True(t, sub.Expire(sub.ExpiresAt()))
	assert.Equal(t, vo.StatusInactive, sub.Status())
	assert.False(t, sub.Expire(sub.ExpiresAt().Add(time.Hour)))
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan("premium-monthly", "Premium Bulanan", "premium", 99000, vo.BillingCycleMonthly)
	require.NoError(t, err)
	assert.True(t, p.IsActive())

	p.Deactivate()
	assert.False(t, p.IsActive())

	_, err = NewPlan("premium-monthly", "Premium", "premium", 0, vo.BillingCycleMonthly)
	assert.Error(t, err)
	_, err = NewPlan("x", "X", "", 1, vo.BillingCycleMonthly)
	assert.Error(t, err)
}
