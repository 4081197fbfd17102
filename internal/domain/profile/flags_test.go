package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/domain/subscription"
	subvo "talentika/internal/domain/subscription/valueobjects"
)

func TestFlagsFromSubscription(t *testing.T) {
	paidAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sub, err := subscription.NewActivation(subscription.ActivationParams{
		UserID:        "user-9",
		PlanID:        "pro-monthly",
		PlanType:      "pro",
		BillingCycle:  subvo.BillingCycleMonthly,
		TransactionID: "txn-9",
		PaidAt:        paidAt,
	})
	require.NoError(t, err)

	flags := FlagsFromSubscription(sub)

	assert.Equal(t, "user-9", flags.UserID)
	assert.Equal(t, subvo.StatusActive, flags.SubscriptionStatus)
	assert.Equal(t, "pro", flags.SubscriptionType)
	require.NotNil(t, flags.SubscriptionEndDate)
	assert.Equal(t, sub.ExpiresAt(), *flags.SubscriptionEndDate)
}
