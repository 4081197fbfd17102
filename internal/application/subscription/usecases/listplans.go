package usecases

import (
	"context"
	"fmt"

	"talentika/internal/domain/subscription"
	"talentika/internal/shared/logger"
)

type PlanView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Price        int64  `json:"price"`
	BillingCycle string `json:"billing_cycle"`
	IsActive     bool   `json:"is_active"`
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, activeOnly bool) ([]*PlanView, error) {
	plans, err := uc.planRepo.List(ctx, activeOnly)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err, "active_only", activeOnly)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	views := make([]*PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, &PlanView{
			ID:           p.ID(),
			Name:         p.Name(),
			Type:         p.Type(),
			Price:        p.Price(),
			BillingCycle: p.BillingCycle().String(),
			IsActive:     p.IsActive(),
		})
	}
	return views, nil
}
