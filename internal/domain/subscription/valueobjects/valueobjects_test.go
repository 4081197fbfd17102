package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBillingCycle(t *testing.T) {
	bc, err := NewBillingCycle(" Yearly ")
	require.NoError(t, err)
	assert.Equal(t, BillingCycleYearly, bc)

	_, err = NewBillingCycle("quarterly")
	assert.Error(t, err)
}

func TestSubscriptionStatus_IsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusInactive.IsValid())
	assert.False(t, SubscriptionStatus("expired").IsValid())
}
