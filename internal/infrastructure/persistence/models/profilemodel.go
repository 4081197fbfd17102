package models

import (
	"time"
)

// ProfileModel carries only the columns this service owns. The identity provider may
// provision other profile columns in the same table.
type ProfileModel struct {
	ID                  string     `gorm:"primaryKey;size:64"`
	SubscriptionStatus  string     `gorm:"size:16;not null;default:inactive"`
	SubscriptionType    *string    `gorm:"size:32"`
	SubscriptionEndDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}
