package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/shared/logger"
)

func TestScriptsDir(t *testing.T) {
	dir, err := ScriptsDir("mysql")
	require.NoError(t, err)
	assert.Equal(t, "scripts/mysql", dir)

	dir, err = ScriptsDir("postgres")
	require.NoError(t, err)
	assert.Equal(t, "scripts/postgres", dir)

	_, err = ScriptsDir("sqlserver")
	assert.Error(t, err)
}

func TestEmbeddedScriptsMatchAcrossDialects(t *testing.T) {
	mysql, err := NewGooseStrategy("mysql", logger.NewNopLogger())
	require.NoError(t, err)
	postgres, err := NewGooseStrategy("postgres", logger.NewNopLogger())
	require.NoError(t, err)

	mysqlScripts, err := mysql.Scripts()
	require.NoError(t, err)
	postgresScripts, err := postgres.Scripts()
	require.NoError(t, err)

	require.NotEmpty(t, mysqlScripts)
	assert.Equal(t, mysqlScripts, postgresScripts)
}

func TestEmbeddedScriptsHaveGooseAnnotations(t *testing.T) {
	for _, dir := range []string{"scripts/mysql", "scripts/postgres"} {
		entries, err := fs.ReadDir(scripts, dir)
		require.NoError(t, err)
		for _, e := range entries {
			body, err := fs.ReadFile(scripts, dir+"/"+e.Name())
			require.NoError(t, err)
			assert.Contains(t, string(body), "-- +goose Up", e.Name())
			assert.Contains(t, string(body), "-- +goose Down", e.Name())
		}
	}
}
