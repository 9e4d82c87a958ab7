package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SERVICE_NAME", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "shop-api", cfg.ServiceName)
	assert.NotEmpty(t, cfg.PostgresDSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,,k3:9092")
	t.Setenv("SERVICE_NAME", "shop-test")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092", "k3:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "shop-test", cfg.ServiceName)
}
