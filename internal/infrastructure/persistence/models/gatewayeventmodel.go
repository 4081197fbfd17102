package models

import (
	"time"

	"gorm.io/datatypes"
)

type GatewayEventModel struct {
	ID            string         `gorm:"primaryKey;size:36"`
	Gateway       string         `gorm:"size:32;not null"`
	TransactionID string         `gorm:"size:36;not null;index"`
	InvoiceID     string         `gorm:"size:128"`
	ExternalID    string         `gorm:"size:128"`
	Status        string         `gorm:"size:32"`
	PaidAmount    int64          `gorm:"not null;default:0"`
	Payload       datatypes.JSON `gorm:"type:json"`
	Outcome       string         `gorm:"size:16;not null"`
	Error         string         `gorm:"type:text"`
	ReceivedAt    time.Time      `gorm:"not null;index"`
}

func (GatewayEventModel) TableName() string {
	return "gateway_events"
}
