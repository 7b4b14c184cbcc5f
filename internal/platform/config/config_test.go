package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	for _, key := range []string{"PORT", "RETRY_MAX_RETRIES", "RETRY_BASE_DELAY", "SHUTDOWN_TIMEOUT", "RATE_LIMIT", "CORS_ALLOWED_ORIGINS", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 3, cfg.RetryMaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "100-S", cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("PORT", "9090")
	t.Setenv("RETRY_MAX_RETRIES", "5")
	t.Setenv("RETRY_BASE_DELAY", "250ms")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.RetryMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("PGSQL_URL", "")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "PGSQL_URL")
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		_, err := load(viper.New())
		assert.ErrorContains(t, err, "unsupported STORAGE_DRIVER")
	})
}
