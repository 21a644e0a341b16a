package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gudang/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, config.PolicyAllowAny, cfg.AccessPolicy)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "catalog", cfg.RabbitExchange)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACCESS_POLICY", "AUTHENTICATED_OR_READ_ONLY")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("DB_DEBUG", "true")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, config.PolicyAuthenticatedOrReadOnly, cfg.AccessPolicy)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.DBDebug)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gudang.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER: postgres\nDATABASE_DSN: host=db user=app\n"), 0o600))

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=db user=app", cfg.DatabaseDSN)
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("ACCESS_POLICY", "everyone")

	_, err := config.Load(viper.New(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
