package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentika/internal/domain/profile"
	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/shared/logger"
)

type ActivateSubscriptionCommand struct {
	UserID        string
	PlanID        string
	BillingCycle  vo.BillingCycle
	AmountPaid    int64
	PaymentMethod string
	TransactionID string
	PaidAt        time.Time
}

type ActivateSubscriptionResult struct {
	Subscription *subscription.Subscription
	// Applied is false when a newer window was already stored and nothing was written.
	Applied bool
}

// ActivateSubscriptionUseCase grants the entitlement window paid for by one completed
// transaction. The subscription row and the profile flags are written together.
type ActivateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	profileRepo      profile.Repository
	txRunner         TransactionRunner
	logger           logger.Interface
}

func NewActivateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	profileRepo profile.Repository,
	txRunner TransactionRunner,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		profileRepo:      profileRepo,
		txRunner:         txRunner,
		logger:           logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*ActivateSubscriptionResult, error) {
	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan for activation",
			"error", err,
			"plan_id", cmd.PlanID,
			"transaction_id", cmd.TransactionID,
		)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if cmd.BillingCycle == vo.BillingCycleYearly {
		uc.logger.Warnw("yearly purchase activated with a one-month window",
			"user_id", cmd.UserID,
			"transaction_id", cmd.TransactionID,
		)
	}

	sub, err := subscription.NewActivation(subscription.ActivationParams{
		UserID:        cmd.UserID,
		PlanID:        plan.ID(),
		PlanType:      plan.Type(),
		BillingCycle:  cmd.BillingCycle,
		AmountPaid:    cmd.AmountPaid,
		PaymentMethod: cmd.PaymentMethod,
		TransactionID: cmd.TransactionID,
		PaidAt:        cmd.PaidAt,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid activation: %w", err)
	}

	applied := true
	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil && !errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return fmt.Errorf("failed to load current subscription: %w", err)
		}
		if existing != nil && !sub.Supersedes(existing) {
			applied = false
			return nil
		}

		if err := uc.subscriptionRepo.Upsert(txCtx, sub); err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}
		if err := uc.profileRepo.UpsertSubscriptionFlags(txCtx, profile.FlagsFromSubscription(sub)); err != nil {
			return fmt.Errorf("failed to update profile flags: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to activate subscription",
			"error", err,
			"user_id", cmd.UserID,
			"transaction_id", cmd.TransactionID,
		)
		return nil, err
	}

	if !applied {
		uc.logger.Infow("activation skipped, newer subscription window already recorded",
			"user_id", cmd.UserID,
			"transaction_id", cmd.TransactionID,
		)
		return &ActivateSubscriptionResult{Subscription: sub, Applied: false}, nil
	}

	uc.logger.Infow("subscription activated successfully",
		"user_id", cmd.UserID,
		"plan_id", plan.ID(),
		"transaction_id", cmd.TransactionID,
		"expires_at", sub.ExpiresAt(),
	)
	return &ActivateSubscriptionResult{Subscription: sub, Applied: true}, nil
}
