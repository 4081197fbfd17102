package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"talentika/internal/domain/payment"
	"talentika/internal/infrastructure/persistence/mappers"
	"talentika/internal/infrastructure/persistence/models"
	"talentika/internal/shared/db"
)

// GatewayEventRepository is append-only.
type GatewayEventRepository struct {
	db *gorm.DB
}

func NewGatewayEventRepository(db *gorm.DB) *GatewayEventRepository {
	return &GatewayEventRepository{db: db}
}

func (r *GatewayEventRepository) Create(ctx context.Context, event *payment.GatewayEvent) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.GatewayEventToModel(event)).Error; err != nil {
		return fmt.Errorf("failed to create gateway event: %w", err)
	}
	return nil
}

func (r *GatewayEventRepository) ListByTransactionID(ctx context.Context, transactionID string) ([]*payment.GatewayEvent, error) {
	var rows []models.GatewayEventModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("transaction_id = ?", transactionID).
		Order("received_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list gateway events: %w", err)
	}

	events := make([]*payment.GatewayEvent, 0, len(rows))
	for i := range rows {
		events = append(events, mappers.GatewayEventToDomain(&rows[i]))
	}
	return events, nil
}
