// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every knob the service needs, loaded once at startup and
// passed by reference to the components that use it.
type Config struct {
	DatabaseURL  string
	DatabaseName string

	RedisHost string
	RedisPort int

	JWTSecret string
	JWTExpiry time.Duration

	Port int

	// Optional integrations; empty host disables them.
	RabbitMQHost     string
	RabbitMQPort     int
	RabbitMQUser     string
	RabbitMQPassword string

	ConsulHost string
	ConsulPort int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from environment with local-development defaults.
func Load() *Config {
	return &Config{
		DatabaseURL:  getenv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName: getenv("DATABASE_NAME", "products"),

		RedisHost: getenv("REDIS_HOST", "localhost"),
		RedisPort: atoienv("REDIS_PORT", 6379),

		JWTSecret: getenv("JWT_SECRET", "dev-secret"),
		JWTExpiry: time.Duration(atoienv("JWT_EXPIRES_IN", 3600)) * time.Second,

		Port: atoienv("PORT", 8081),

		RabbitMQHost:     getenv("RABBITMQ_HOST", ""),
		RabbitMQPort:     atoienv("RABBITMQ_PORT", 5672),
		RabbitMQUser:     getenv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getenv("RABBITMQ_PASSWORD", "guest"),

		ConsulHost: getenv("CONSUL_HOST", ""),
		ConsulPort: atoienv("CONSUL_PORT", 8500),
	}
}
