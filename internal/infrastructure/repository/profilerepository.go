package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentika/internal/domain/profile"
	"talentika/internal/infrastructure/persistence/mappers"
	"talentika/internal/infrastructure/persistence/models"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/db"
)

// ProfileRepository writes only the subscription columns of the profiles table.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) UpsertSubscriptionFlags(ctx context.Context, flags profile.SubscriptionFlags) error {
	now := biztime.NowUTC()
	model := &models.ProfileModel{
		ID:                  flags.UserID,
		SubscriptionStatus:  flags.SubscriptionStatus.String(),
		SubscriptionEndDate: flags.SubscriptionEndDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if flags.SubscriptionType != "" {
		planType := flags.SubscriptionType
		model.SubscriptionType = &planType
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subscription_status", "subscription_type", "subscription_end_date", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert profile subscription flags: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetSubscriptionFlags(ctx context.Context, userID string) (*profile.SubscriptionFlags, error) {
	var model models.ProfileModel

	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return mappers.ProfileFlagsToDomain(&model), nil
}
