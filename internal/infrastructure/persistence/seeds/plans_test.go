package seeds

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

const catalogYAML = `
plans:
  - id: premium-monthly
    name: Premium
    type: premium
    price: 99000
    billing_cycle: monthly
  - id: premium-yearly
    name: Premium
    type: premium
    price: 990000
    billing_cycle: yearly
  - id: legacy
    name: Legacy
    type: basic
    price: 10000
    billing_cycle: monthly
    active: false
`

type recordingPlanRepo struct {
	upserted []*subscription.Plan
	err      error
}

func (r *recordingPlanRepo) GetByID(ctx context.Context, id string) (*subscription.Plan, error) {
	return nil, errors.New("not implemented")
}

func (r *recordingPlanRepo) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	return r.upserted, nil
}

func (r *recordingPlanRepo) Upsert(ctx context.Context, plan *subscription.Plan) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, plan)
	return nil
}

func TestParsePlanCatalog(t *testing.T) {
	plans, err := ParsePlanCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "premium-monthly", plans[0].ID())
	assert.Equal(t, int64(99000), plans[0].Price())
	assert.True(t, plans[0].IsActive())
	assert.Equal(t, vo.BillingCycleYearly, plans[1].BillingCycle())
	assert.False(t, plans[2].IsActive())
}

func TestParsePlanCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "plans: [:"},
		{"bad cycle", "plans:\n  - {id: a, name: A, type: a, price: 1, billing_cycle: weekly}"},
		{"zero price", "plans:\n  - {id: a, name: A, type: a, price: 0, billing_cycle: monthly}"},
		{"duplicate", "plans:\n  - {id: a, name: A, type: a, price: 1, billing_cycle: monthly}\n  - {id: a, name: A, type: a, price: 1, billing_cycle: monthly}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlanCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeedPlans(t *testing.T) {
	plans, err := ParsePlanCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	repo := &recordingPlanRepo{}
	require.NoError(t, SeedPlans(context.Background(), repo, plans, logger.NewNopLogger()))
	assert.Len(t, repo.upserted, 3)

	failing := &recordingPlanRepo{err: errors.New("db down")}
	assert.ErrorContains(t, SeedPlans(context.Background(), failing, plans, logger.NewNopLogger()), "premium-monthly")
}

func TestLoadPlanCatalog_ShippedFile(t *testing.T) {
	plans, err := LoadPlanCatalog("../../../../configs/plans.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, plans)
}
