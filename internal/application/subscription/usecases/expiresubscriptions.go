package usecases

import (
	"context"
	"fmt"
	"time"

	"talentika/internal/domain/profile"
	"talentika/internal/domain/subscription"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/logger"
)

const defaultExpireBatchSize = 500

// ExpireSubscriptionsUseCase flips lapsed subscriptions to inactive and mirrors the change
// onto profile flags. Reads already treat a lapsed row as inactive; this job keeps the
// stored status honest for reporting.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	profileRepo      profile.Repository
	txRunner         TransactionRunner
	logger           logger.Interface
	batchSize        int
	now              func() time.Time
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	profileRepo profile.Repository,
	txRunner TransactionRunner,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		txRunner:         txRunner,
		logger:           logger,
		batchSize:        defaultExpireBatchSize,
		now:              biztime.NowUTC,
	}
}

// Execute returns the number of subscriptions marked inactive.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	lapsed, err := uc.subscriptionRepo.ListLapsedActive(ctx, now, uc.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find lapsed subscriptions: %w", err)
	}
	if len(lapsed) == 0 {
		return 0, nil
	}

	uc.logger.Infow("found lapsed subscriptions to process", "count", len(lapsed))

	marked := 0
	for _, sub := range lapsed {
		if !sub.Expire(now) {
			continue
		}
		changed := false
		err := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
			ok, err := uc.subscriptionRepo.MarkInactiveIfLapsed(txCtx, sub.UserID(), now)
			if err != nil || !ok {
				return err
			}
			changed = true

			end := sub.ExpiresAt()
			return uc.profileRepo.UpsertSubscriptionFlags(txCtx, profile.SubscriptionFlags{
				UserID:              sub.UserID(),
				SubscriptionStatus:  sub.Status(),
				SubscriptionType:    sub.PlanType(),
				SubscriptionEndDate: &end,
			})
		})
		if err != nil {
			uc.logger.Errorw("failed to expire subscription",
				"user_id", sub.UserID(),
				"error", err,
			)
			continue
		}
		if changed {
			marked++
			uc.logger.Debugw("subscription marked inactive", "user_id", sub.UserID(), "expired_at", sub.ExpiresAt())
		}
	}

	return marked, nil
}
