package models

import (
	"time"
)

type PlanModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	Name         string `gorm:"size:128;not null"`
	Type         string `gorm:"size:32;not null"`
	Price        int64  `gorm:"not null"`
	BillingCycle string `gorm:"size:16;not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
