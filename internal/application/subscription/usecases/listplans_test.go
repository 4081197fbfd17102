package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/logger"
)

func TestListPlans(t *testing.T) {
	plan, err := subscription.NewPlan("premium-monthly", "Premium", "premium", 99000, vo.BillingCycleMonthly)
	require.NoError(t, err)

	var gotActiveOnly bool
	repo := &mockPlanRepository{
		ListFunc: func(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
			gotActiveOnly = activeOnly
			return []*subscription.Plan{plan}, nil
		},
	}

	views, err := NewListPlansUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, gotActiveOnly)
	require.Len(t, views, 1)
	assert.Equal(t, "premium-monthly", views[0].ID)
	assert.Equal(t, "monthly", views[0].BillingCycle)
	assert.True(t, views[0].IsActive)
}

func TestListPlans_RepositoryError(t *testing.T) {
	repo := &mockPlanRepository{
		ListFunc: func(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
			return nil, errors.New("db down")
		},
	}
	_, err := NewListPlansUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), false)
	assert.ErrorContains(t, err, "db down")
}
