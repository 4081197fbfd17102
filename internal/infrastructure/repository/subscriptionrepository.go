package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentika/internal/domain/subscription"
	vo "talentika/internal/domain/subscription/valueobjects"
	"talentika/internal/infrastructure/persistence/mappers"
	"talentika/internal/infrastructure/persistence/models"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/db"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	return r.getByUserID(db.GetTxFromContext(ctx, r.db), userID)
}

// GetByUserIDForUpdate issues SELECT ... FOR UPDATE. The sqlite dialect drops the
// locking clause.
func (r *SubscriptionRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*subscription.Subscription, error) {
	return r.getByUserID(db.GetTxFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *SubscriptionRepository) getByUserID(tx *gorm.DB, userID string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)
	model.ID = 0
	model.UpdatedAt = biztime.NowUTC()

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plan_id", "plan_type", "billing_cycle", "status",
				"starts_at", "expires_at", "amount_paid", "payment_method",
				"transaction_id", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) ListLapsedActive(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	var rows []models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND expires_at <= ?", vo.StatusActive, now.UTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list lapsed subscriptions: %w", err)
	}

	subs := make([]*subscription.Subscription, 0, len(rows))
	for i := range rows {
		s, err := mappers.SubscriptionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func (r *SubscriptionRepository) MarkInactiveIfLapsed(ctx context.Context, userID string, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND status = ? AND expires_at <= ?", userID, vo.StatusActive, now.UTC()).
		Updates(map[string]interface{}{
			"status":     vo.StatusInactive.String(),
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to expire subscription: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
