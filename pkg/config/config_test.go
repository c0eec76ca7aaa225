package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndanilchenko/tasktrack/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "tasktrack", cfg.JWTIssuer)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15, cfg.JWTTTLMinutes)
	assert.Equal(t, 5, cfg.RateLimitMaxRequests)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
}
