package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/platefwd/orderdesk/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis connection settings for rate limiting
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// IdentityConfig holds OIDC identity provider settings
type IdentityConfig struct {
	IssuerURL  string
	ClientID   string
	AdminClaim string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level observability.LogLevel
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("ORDERDESK_HOST", "0.0.0.0"),
			Port:            getEnv("ORDERDESK_PORT", "8080"),
			ReadTimeout:     getEnvDuration("ORDERDESK_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("ORDERDESK_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("ORDERDESK_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("ORDERDESK_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("ORDERDESK_HEALTH_PORT", "9090"),
		},
		Database: DatabaseConfig{
			URL:          getEnv("ORDERDESK_POSTGRES_URL", ""),
			MaxOpenConns: getEnvInt("ORDERDESK_POSTGRES_MAX_CONNS", 20),
			MaxIdleConns: getEnvInt("ORDERDESK_POSTGRES_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:      getEnv("ORDERDESK_REDIS_URL", ""),
			Password: getEnv("ORDERDESK_REDIS_PASSWORD", ""),
			DB:       getEnvInt("ORDERDESK_REDIS_DB", 0),
		},
		Identity: IdentityConfig{
			IssuerURL:  getEnv("ORDERDESK_OIDC_ISSUER", ""),
			ClientID:   getEnv("ORDERDESK_OIDC_CLIENT_ID", "orderdesk"),
			AdminClaim: getEnv("ORDERDESK_OIDC_ADMIN_CLAIM", "platform_admin"),
		},
		Logging: LoggingConfig{
			Level: observability.ParseLogLevel(getEnv("ORDERDESK_LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("postgres URL is required")
	}
	if c.Identity.IssuerURL == "" {
		return fmt.Errorf("OIDC issuer URL is required")
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
