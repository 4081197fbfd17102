package mappers

import (
	"fmt"

	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:            s.ID(),
		UserID:        s.UserID(),
		PlanID:        s.PlanID(),
		PlanType:      s.PlanType(),
		BillingCycle:  s.BillingCycle().String(),
		Status:        s.Status().String(),
		StartsAt:      s.StartsAt().UTC(),
		ExpiresAt:     s.ExpiresAt().UTC(),
		AmountPaid:    s.AmountPaid(),
		PaymentMethod: s.PaymentMethod(),
		TransactionID: s.TransactionID(),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
}

func SubscriptionToDomain(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	cycle, err := vo.NewBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("subscription for user %s: %w", model.UserID, err)
	}

	status := vo.SubscriptionStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("subscription for user %s: invalid status %q", model.UserID, model.Status)
	}

	return subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:            model.ID,
		UserID:        model.UserID,
		PlanID:        model.PlanID,
		PlanType:      model.PlanType,
		BillingCycle:  cycle,
		Status:        status,
		StartsAt:      model.StartsAt.UTC(),
		ExpiresAt:     model.ExpiresAt.UTC(),
		AmountPaid:    model.AmountPaid,
		PaymentMethod: model.PaymentMethod,
		TransactionID: model.TransactionID,
		CreatedAt:     model.CreatedAt.UTC(),
		UpdatedAt:     model.UpdatedAt.UTC(),
	}), nil
}

func PlanToModel(p *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:           p.ID(),
		Name:         p.Name(),
		Type:         p.Type(),
		Price:        p.Price(),
		BillingCycle: p.BillingCycle().String(),
		IsActive:     p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func PlanToDomain(model *models.PlanModel) (*subscription.Plan, error) {
	cycle, err := vo.NewBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", model.ID, err)
	}
	return subscription.ReconstructPlan(model.ID, model.Name, model.Type, model.Price, cycle,
		model.IsActive, model.CreatedAt.UTC(), model.UpdatedAt.UTC()), nil
}
