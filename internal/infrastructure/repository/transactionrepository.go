package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"talentika/internal/domain/payment"
	vo "talentika/internal/domain/payment/valueobjects"
	"talentika/internal/infrastructure/persistence/mappers"
	"talentika/internal/infrastructure/persistence/models"
	"talentika/internal/shared/biztime"
	"talentika/internal/shared/db"
)

// activationGracePeriod keeps the retry job away from transactions whose webhook
// handler is still running the activator.
const activationGracePeriod = 2 * time.Minute

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *payment.Transaction) error {
	model := mappers.TransactionToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	var model models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) GetByExternalID(ctx context.Context, externalTransactionID string) (*payment.Transaction, error) {
	var model models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("external_transaction_id = ?", externalTransactionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by external id: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) SetExternalReference(ctx context.Context, id, externalTransactionID, invoiceURL string) error {
	updates := map[string]interface{}{
		"external_transaction_id": externalTransactionID,
		"updated_at":              biztime.NowUTC(),
	}
	if invoiceURL != "" {
		updates["invoice_url"] = invoiceURL
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ? AND external_transaction_id IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to set external reference: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the row is missing or the reference is already set.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	stored := existing.ExternalTransactionID()
	if stored == nil || *stored != externalTransactionID {
		return payment.ErrExternalReferenceAlreadySet
	}
	if invoiceURL == "" || existing.InvoiceURL() != nil {
		return nil
	}

	// Same invoice stored without its URL, e.g. backfilled by an early webhook.
	result = db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ? AND external_transaction_id = ? AND invoice_url IS NULL", id, externalTransactionID).
		Updates(map[string]interface{}{
			"invoice_url": invoiceURL,
			"updated_at":  biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set invoice url: %w", result.Error)
	}
	return nil
}

func (r *TransactionRepository) CompleteIfPending(ctx context.Context, id string, paidAmount int64, paidAt time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", id, vo.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":             vo.TransactionStatusCompleted.String(),
			"paid_amount":        paidAmount,
			"paid_at":            paidAt.UTC(),
			"activation_pending": true,
			"updated_at":         biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to complete transaction: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *TransactionRepository) FailIfPending(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", id, vo.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":         vo.TransactionStatusFailed.String(),
			"failure_reason": reason,
			"updated_at":     at.UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to fail transaction: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *TransactionRepository) MarkActivationSucceeded(ctx context.Context, id string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"activation_pending": false,
			"activation_error":   nil,
			"updated_at":         biztime.NowUTC(),
		}).Error; err != nil {
		return fmt.Errorf("failed to mark activation succeeded: %w", err)
	}
	return nil
}

func (r *TransactionRepository) MarkActivationFailed(ctx context.Context, id, reason string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"activation_pending": true,
			"activation_error":   reason,
			"updated_at":         biztime.NowUTC(),
		}).Error; err != nil {
		return fmt.Errorf("failed to mark activation failed: %w", err)
	}
	return nil
}

// ListNeedingActivation returns completed transactions still waiting for a subscription:
// those whose activation failed and those left pending past the grace period by a crash.
func (r *TransactionRepository) ListNeedingActivation(ctx context.Context, limit int) ([]*payment.Transaction, error) {
	var rows []models.TransactionModel

	staleBefore := biztime.NowUTC().Add(-activationGracePeriod)
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND activation_pending = ?", vo.TransactionStatusCompleted, true).
		Where("activation_error IS NOT NULL OR updated_at < ?", staleBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions needing activation: %w", err)
	}

	return mappers.TransactionsToDomain(rows)
}

func (r *TransactionRepository) List(ctx context.Context, filter payment.TransactionFilter) ([]*payment.Transaction, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ActivationPending != nil {
		query = query.Where("activation_pending = ?", *filter.ActivationPending)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var rows []models.TransactionModel
	if err := query.
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	txns, err := mappers.TransactionsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
