package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/logger"
)

// SubscriptionView is what the client needs to gate premium features.
type SubscriptionView struct {
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	IsEntitled   bool       `json:"is_entitled"`
	PlanID       string     `json:"plan_id,omitempty"`
	PlanType     string     `json:"plan_type,omitempty"`
	BillingCycle string     `json:"billing_cycle,omitempty"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
	now              func() time.Time
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// Execute reports the effective status: a row past expires_at is inactive even if the
// sweep has not reached it. A user without a row is inactive.
func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, userID string) (*SubscriptionView, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, userID)
	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return &SubscriptionView{UserID: userID, Status: vo.StatusInactive.String()}, nil
	}
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	now := uc.now()
	startsAt, expiresAt := sub.StartsAt(), sub.ExpiresAt()
	return &SubscriptionView{
		UserID:       sub.UserID(),
		Status:       sub.EffectiveStatus(now).String(),
		IsEntitled:   sub.IsEntitled(now),
		PlanID:       sub.PlanID(),
		PlanType:     sub.PlanType(),
		BillingCycle: sub.BillingCycle().String(),
		StartsAt:     &startsAt,
		ExpiresAt:    &expiresAt,
	}, nil
}
