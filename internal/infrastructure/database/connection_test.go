package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/shared/config"
)

func TestDialector(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Username: "u", Password: "p", Database: "talentika"}
	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	cfg.Driver = "postgres"
	cfg.Port = 5432
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Driver = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestGet_BeforeInit(t *testing.T) {
	assert.NoError(t, Close())
}
