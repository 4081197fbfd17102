package subscription

import (
	"context"
	"time"
)

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
	// GetByUserIDForUpdate locks the row for the surrounding transaction where the
	// database supports row locks.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Subscription, error)
	// Upsert writes the subscription keyed by user id, replacing any existing row.
	Upsert(ctx context.Context, sub *Subscription) error
	ListLapsedActive(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)
	// MarkInactiveIfLapsed flips one lapsed active row to inactive. The bool reports
	// whether this call changed the row.
	MarkInactiveIfLapsed(ctx context.Context, userID string, now time.Time) (bool, error)
}

type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)
	Upsert(ctx context.Context, plan *Plan) error
}
