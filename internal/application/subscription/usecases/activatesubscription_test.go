package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/domain/profile"
	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/logger"
)

func premiumPlan() *subscription.Plan {
	return subscription.ReconstructPlan("premium-monthly", "Premium Bulanan", "premium", 99000,
		vo.BillingCycleMonthly, true, time.Now(), time.Now())
}

func activationCmd(paidAt time.Time) ActivateSubscriptionCommand {
	return ActivateSubscriptionCommand{
		UserID:        "user-1",
		PlanID:        "premium-monthly",
		BillingCycle:  vo.BillingCycleMonthly,
		AmountPaid:    99000,
		PaymentMethod: "qris",
		TransactionID: "txn-1",
		PaidAt:        paidAt,
	}
}

type activationFixture struct {
	subs     *mockSubscriptionRepository
	plans    *mockPlanRepository
	profiles *mockProfileRepository
	tx       *mockTxRunner
	upserted []*subscription.Subscription
	flags    []profile.SubscriptionFlags
}

func newActivationFixture() *activationFixture {
	f := &activationFixture{tx: &mockTxRunner{}}
	f.subs = &mockSubscriptionRepository{
		UpsertFunc: func(ctx context.Context, sub *subscription.Subscription) error {
			f.upserted = append(f.upserted, sub)
			return nil
		},
	}
	f.plans = &mockPlanRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*subscription.Plan, error) {
			return premiumPlan(), nil
		},
	}
	f.profiles = &mockProfileRepository{
		UpsertSubscriptionFlagsFunc: func(ctx context.Context, flags profile.SubscriptionFlags) error {
			f.flags = append(f.flags, flags)
			return nil
		},
	}
	return f
}

func (f *activationFixture) useCase() *ActivateSubscriptionUseCase {
	return NewActivateSubscriptionUseCase(f.subs, f.plans, f.profiles, f.tx, logger.NewNopLogger())
}

func TestActivateSubscription_NewSubscriber(t *testing.T) {
	f := newActivationFixture()
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	result, err := f.useCase().Execute(context.Background(), activationCmd(paidAt))

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.upserted, 1)
	sub := f.upserted[0]
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, "premium", sub.PlanType())
	assert.Equal(t, paidAt, sub.StartsAt())
	assert.Equal(t, time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC), sub.ExpiresAt())

	require.Len(t, f.flags, 1)
	assert.Equal(t, vo.StatusActive, f.flags[0].SubscriptionStatus)
	assert.Equal(t, "premium", f.flags[0].SubscriptionType)
	assert.Equal(t, sub.ExpiresAt(), *f.flags[0].SubscriptionEndDate)
}

func TestActivateSubscription_ReplayIsIdempotent(t *testing.T) {
	f := newActivationFixture()
	paidAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	f.subs.GetByUserIDForUpdateFunc = func(ctx context.Context, userID string) (*subscription.Subscription, error) {
		if len(f.upserted) == 0 {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return f.upserted[len(f.upserted)-1], nil
	}
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), activationCmd(paidAt))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), activationCmd(paidAt))
	require.NoError(t, err)

	require.Len(t, f.upserted, 2)
	assert.Equal(t, f.upserted[0].StartsAt(), f.upserted[1].StartsAt())
	assert.Equal(t, f.upserted[0].ExpiresAt(), f.upserted[1].ExpiresAt())
	assert.Equal(t, *f.flags[0].SubscriptionEndDate, *f.flags[1].SubscriptionEndDate)
}

func TestActivateSubscription_OlderTransactionDoesNotOverwrite(t *testing.T) {
	f := newActivationFixture()
	newer, err := subscription.NewActivation(subscription.ActivationParams{
		UserID:        "user-1",
		PlanID:        "premium-monthly",
		PlanType:      "premium",
		BillingCycle:  vo.BillingCycleMonthly,
		TransactionID: "txn-2",
		PaidAt:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	f.subs.GetByUserIDForUpdateFunc = func(ctx context.Context, userID string) (*subscription.Subscription, error) {
		return newer, nil
	}

	result, err := f.useCase().Execute(context.Background(), activationCmd(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, f.upserted)
	assert.Empty(t, f.flags)
}

func TestActivateSubscription_PlanLookupFails(t *testing.T) {
	f := newActivationFixture()
	f.plans.GetByIDFunc = func(ctx context.Context, id string) (*subscription.Plan, error) {
		return nil, subscription.ErrPlanNotFound
	}

	_, err := f.useCase().Execute(context.Background(), activationCmd(time.Now()))

	assert.ErrorIs(t, err, subscription.ErrPlanNotFound)
	assert.Zero(t, f.tx.calls)
	assert.Empty(t, f.upserted)
}

func TestActivateSubscription_ProfileFailureSurfaces(t *testing.T) {
	f := newActivationFixture()
	boom := errors.New("profiles table locked")
	f.profiles.UpsertSubscriptionFlagsFunc = func(ctx context.Context, flags profile.SubscriptionFlags) error {
		return boom
	}

	_, err := f.useCase().Execute(context.Background(), activationCmd(time.Now()))

	assert.ErrorIs(t, err, boom)
}

func TestActivateSubscription_YearlyGetsOneMonth(t *testing.T) {
	f := newActivationFixture()
	cmd := activationCmd(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	cmd.BillingCycle = vo.BillingCycleYearly

	_, err := f.useCase().Execute(context.Background(), cmd)

	require.NoError(t, err)
	require.Len(t, f.upserted, 1)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), f.upserted[0].ExpiresAt())
	assert.Equal(t, vo.BillingCycleYearly, f.upserted[0].BillingCycle())
}
