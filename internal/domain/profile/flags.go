// Package profile holds the subscription flags denormalized onto a user's profile so the
// client can gate premium features without joining the subscription table.
package profile

import (
	"context"
	"errors"
	"time"

	"talentika/internal/domain/subscription"
	subvo "talentika/internal/domain/subscription/valueobjects"
)

var ErrProfileNotFound = errors.New("profile not found")

type SubscriptionFlags struct {
	UserID              string
	SubscriptionStatus  subvo.SubscriptionStatus
	SubscriptionType    string
	SubscriptionEndDate *time.Time
}

// FlagsFromSubscription mirrors the stored subscription. Status is copied as stored, not
// as evaluated, so the flags always equal the subscription row.
func FlagsFromSubscription(sub *subscription.Subscription) SubscriptionFlags {
	end := sub.ExpiresAt()
	return SubscriptionFlags{
		UserID:              sub.UserID(),
		SubscriptionStatus:  sub.Status(),
		SubscriptionType:    sub.PlanType(),
		SubscriptionEndDate: &end,
	}
}

type Repository interface {
	// UpsertSubscriptionFlags creates the profile row if the identity provider has not
	// provisioned one yet.
	UpsertSubscriptionFlags(ctx context.Context, flags SubscriptionFlags) error
	GetSubscriptionFlags(ctx context.Context, userID string) (*SubscriptionFlags, error)
}
