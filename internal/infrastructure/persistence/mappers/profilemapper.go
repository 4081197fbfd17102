package mappers

import (
	"talentika/internal/domain/profile"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/infrastructure/persistence/models"
)

func ProfileFlagsToDomain(model *models.ProfileModel) *profile.SubscriptionFlags {
	flags := &profile.SubscriptionFlags{
		UserID:             model.ID,
		SubscriptionStatus: vo.SubscriptionStatus(model.SubscriptionStatus),
	}
	if model.SubscriptionType != nil {
		flags.SubscriptionType = *model.SubscriptionType
	}
	if model.SubscriptionEndDate != nil {
		end := model.SubscriptionEndDate.UTC()
		flags.SubscriptionEndDate = &end
	}
	return flags
}
