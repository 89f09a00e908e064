package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "taskmanager-api", cfg.JWTIssuer)
	assert.Equal(t, "taskmanager-client", cfg.JWTAudience)
	assert.Equal(t, 8*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, DefaultJWTSigningSecret, cfg.JWTSigningSecret)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_SIGNING_SECRET", "a-real-secret")
	t.Setenv("JWT_EXPIRATION_SECONDS", "3600")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "a-real-secret", cfg.JWTSigningSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_UsesDefaultSigningSecret(t *testing.T) {
	cfg := Load()
	assert.True(t, cfg.UsesDefaultSigningSecret())

	t.Setenv("JWT_SIGNING_SECRET", "rotated")
	cfg = Load()
	assert.False(t, cfg.UsesDefaultSigningSecret())
}

func TestConfig_GetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
