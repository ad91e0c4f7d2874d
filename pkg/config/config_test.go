package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-activos/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "control-activos", cfg.App.Name)
	assert.Equal(t, 3, cfg.Inventory.MaxRetries)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_LOCK_TTL", "250ms")
	t.Setenv("REDIS_LOCK_WAIT", "3")
	t.Setenv("INVENTORY_MAX_RETRIES", "5")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.LockTTL)
	assert.Equal(t, 3*time.Second, cfg.Redis.LockWait)
	assert.Equal(t, 5, cfg.Inventory.MaxRetries)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_SinSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "activos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/activos?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
