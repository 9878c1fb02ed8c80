package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/config"
	"pizzabot/internal/database"
	"pizzabot/internal/database/databasetest"
	"pizzabot/internal/models"
)

func TestOpenAndMigrate_CreatesTables(t *testing.T) {
	db := databasetest.Open(t)

	assert.True(t, db.HasTable(&models.MenuItem{}))
	assert.True(t, db.HasTable(&models.Order{}))
	assert.True(t, db.HasTable("menu"))
	assert.True(t, db.HasTable("orders"))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := databasetest.Open(t)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "nosuchdb", DSN: "x"})
	assert.Error(t, err)
}
