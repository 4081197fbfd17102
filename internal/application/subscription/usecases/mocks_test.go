package usecases

import (
	"context"
	"time"

	"talentika/internal/domain/profile"
	"talentika/internal/domain/subscription"
)

type mockSubscriptionRepository struct {
	GetByUserIDFunc          func(ctx context.Context, userID string) (*subscription.Subscription, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, userID string) (*subscription.Subscription, error)
	UpsertFunc               func(ctx context.Context, sub *subscription.Subscription) error
	ListLapsedActiveFunc     func(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error)
	MarkInactiveIfLapsedFunc func(ctx context.Context, userID string, now time.Time) (bool, error)
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*subscription.Subscription, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, userID)
	}
	return nil, subscription.ErrSubscriptionNotFound
}

func (m *mockSubscriptionRepository) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListLapsedActive(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	if m.ListLapsedActiveFunc != nil {
		return m.ListLapsedActiveFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) MarkInactiveIfLapsed(ctx context.Context, userID string, now time.Time) (bool, error) {
	if m.MarkInactiveIfLapsedFunc != nil {
		return m.MarkInactiveIfLapsedFunc(ctx, userID, now)
	}
	return false, nil
}

type mockPlanRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*subscription.Plan, error)
	ListFunc    func(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error)
	UpsertFunc  func(ctx context.Context, plan *subscription.Plan) error
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, subscription.ErrPlanNotFound
}

func (m *mockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockPlanRepository) Upsert(ctx context.Context, plan *subscription.Plan) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, plan)
	}
	return nil
}

type mockProfileRepository struct {
	UpsertSubscriptionFlagsFunc func(ctx context.Context, flags profile.SubscriptionFlags) error
	GetSubscriptionFlagsFunc    func(ctx context.Context, userID string) (*profile.SubscriptionFlags, error)
}

func (m *mockProfileRepository) UpsertSubscriptionFlags(ctx context.Context, flags profile.SubscriptionFlags) error {
	if m.UpsertSubscriptionFlagsFunc != nil {
		return m.UpsertSubscriptionFlagsFunc(ctx, flags)
	}
	return nil
}

func (m *mockProfileRepository) GetSubscriptionFlags(ctx context.Context, userID string) (*profile.SubscriptionFlags, error) {
	if m.GetSubscriptionFlagsFunc != nil {
		return m.GetSubscriptionFlagsFunc(ctx, userID)
	}
	return nil, nil
}

// mockTxRunner runs the callback inline and reports how often it was used.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
