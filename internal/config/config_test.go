package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_NAME", "REDIS_HOST", "REDIS_PORT",
		"JWT_SECRET", "JWT_EXPIRES_IN", "PORT",
		"RABBITMQ_HOST", "CONSUL_HOST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, "products", cfg.DatabaseName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 8081, cfg.Port)
	assert.Empty(t, cfg.RabbitMQHost)
	assert.Empty(t, cfg.ConsulHost)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("DATABASE_NAME", "shop")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "120")
	t.Setenv("PORT", "9090")
	t.Setenv("RABBITMQ_HOST", "rabbit")
	t.Setenv("CONSUL_HOST", "consul")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017", cfg.DatabaseURL)
	assert.Equal(t, "shop", cfg.DatabaseName)
	assert.Equal(t, "redis", cfg.RedisHost)
	assert.Equal(t, 6380, cfg.RedisPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "rabbit", cfg.RabbitMQHost)
	assert.Equal(t, "consul", cfg.ConsulHost)
}

func TestLoadBadNumberFallsBack(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 6379, cfg.RedisPort)
}
