package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefwd/orderdesk/pkg/observability"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ORDERDESK_POSTGRES_URL", "postgres://localhost/orderdesk")
	t.Setenv("ORDERDESK_OIDC_ISSUER", "https://id.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "orderdesk", cfg.Identity.ClientID)
	assert.Equal(t, "platform_admin", cfg.Identity.AdminClaim)
	assert.Equal(t, observability.InfoLevel, cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORDERDESK_PORT", "9000")
	t.Setenv("ORDERDESK_READ_TIMEOUT", "5s")
	t.Setenv("ORDERDESK_POSTGRES_MAX_CONNS", "50")
	t.Setenv("ORDERDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, observability.DebugLevel, cfg.Logging.Level)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ORDERDESK_POSTGRES_MAX_CONNS", "not-a-number")
	t.Setenv("ORDERDESK_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	t.Run("missing postgres URL", func(t *testing.T) {
		t.Setenv("ORDERDESK_POSTGRES_URL", "")
		t.Setenv("ORDERDESK_OIDC_ISSUER", "https://id.example.com")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres URL is required")
	})

	t.Run("missing OIDC issuer", func(t *testing.T) {
		t.Setenv("ORDERDESK_POSTGRES_URL", "postgres://localhost/orderdesk")
		t.Setenv("ORDERDESK_OIDC_ISSUER", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OIDC issuer URL is required")
	})

	t.Run("port clash with health port", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ORDERDESK_PORT", "9090")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be different")
	})
}
