package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"talentika/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	return e, db
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, _ := newTestEnforcer(t)
	require.NoError(t, e.EnsureDefaultPolicies())
	// Second run is a no-op.
	require.NoError(t, e.EnsureDefaultPolicies())

	allowed, err := e.Enforce("admin", ResourceTransaction, ActionRetry)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Enforce("user", ResourceTransaction, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforcer_PoliciesPersist(t *testing.T) {
	e, db := newTestEnforcer(t)
	require.NoError(t, e.AddPolicy("support", ResourceTransaction, ActionRead))

	reloaded, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	allowed, err := reloaded.Enforce("support", ResourceTransaction, ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("support", ResourceTransaction, ActionRead))
	require.NoError(t, reloaded.LoadPolicy())
	allowed, err = reloaded.Enforce("support", ResourceTransaction, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforcer_WildcardAction(t *testing.T) {
	e, _ := newTestEnforcer(t)
	require.NoError(t, e.AddPolicy("superadmin", ResourcePlan, "*"))

	allowed, err := e.Enforce("superadmin", ResourcePlan, "anything")
	require.NoError(t, err)
	assert.True(t, allowed)
}
