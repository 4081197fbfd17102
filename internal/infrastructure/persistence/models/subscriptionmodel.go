package models

import (
	"time"
)

// SubscriptionModel holds one row per user. Activations overwrite it in place.
type SubscriptionModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"size:64;not null;uniqueIndex"`
	PlanID        string    `gorm:"size:64;not null"`
	PlanType      string    `gorm:"size:32;not null"`
	BillingCycle  string    `gorm:"size:16;not null"`
	Status        string    `gorm:"size:16;not null;index:idx_subscriptions_status_expires"`
	StartsAt      time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null;index:idx_subscriptions_status_expires"`
	AmountPaid    int64     `gorm:"not null"`
	PaymentMethod string    `gorm:"size:32"`
	TransactionID string    `gorm:"size:36"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
