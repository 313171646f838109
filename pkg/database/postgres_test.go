package database

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/divlens/backend/pkg/config"
)

func loadIntegrationConfig(t *testing.T) *config.Config {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err, "load config")
	return cfg
}

func TestNew(t *testing.T) {
	cfg := loadIntegrationConfig(t)

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, db.Ping(ctx))
}

func TestHealthCheck(t *testing.T) {
	cfg := loadIntegrationConfig(t)

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := db.HealthCheck(ctx)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Greater(t, status.Stats.MaxConns, int32(0))
}

func TestMigrate(t *testing.T) {
	cfg := loadIntegrationConfig(t)

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	result, err := db.Migrate()
	require.NoError(t, err)
	assert.False(t, result.Dirty)
	assert.Equal(t, uint(2), result.Version)

	// second run is a no-op
	again, err := db.Migrate()
	require.NoError(t, err)
	assert.False(t, again.Applied)
}

func TestNewWithInvalidURL(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			URL:             "invalid://url",
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
	}

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)

	// every up migration has a matching down migration
	assert.ElementsMatch(t, []string{
		"migrations/000001_create_evaluations.down.sql",
		"migrations/000001_create_evaluations.up.sql",
		"migrations/000002_create_results.down.sql",
		"migrations/000002_create_results.up.sql",
	}, files)
}

func TestRollbackRejectsNonPositiveSteps(t *testing.T) {
	db := &DB{}
	assert.Error(t, db.Rollback(0))
}
