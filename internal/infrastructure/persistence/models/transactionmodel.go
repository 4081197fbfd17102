package models

import (
	"time"
)

// TransactionModel is the ledger row. external_transaction_id is unique so one gateway
// invoice maps to at most one transaction.
type TransactionModel struct {
	ID                    string  `gorm:"primaryKey;size:36"`
	UserID                string  `gorm:"size:64;not null;index"`
	PlanID                string  `gorm:"size:64;not null"`
	Amount                int64   `gorm:"not null"`
	Currency              string  `gorm:"size:3;not null;default:IDR"`
	PaymentMethod         string  `gorm:"size:32;not null"`
	BillingCycle          string  `gorm:"size:16;not null"`
	VoucherID             *string `gorm:"size:64"`
	Gateway               string  `gorm:"size:32;not null"`
	Status                string  `gorm:"size:16;not null;index"`
	ExternalTransactionID *string `gorm:"size:128;uniqueIndex"`
	InvoiceURL            *string `gorm:"type:text"`
	PaidAmount            *int64
	PaidAt                *time.Time
	FailureReason         *string `gorm:"size:255"`
	ActivationPending     bool    `gorm:"not null;default:false;index"`
	ActivationError       *string `gorm:"type:text"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}
