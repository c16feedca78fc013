package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
	assert.False(t, cfg.Psql.RunMigrations)
	assert.Equal(t, "postgres", cfg.Psql.Addr.Scheme)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 366, cfg.Pauta.MaxCampaignDays)
	assert.Equal(t, "16%", cfg.Pauta.DefaultTaxOption)
	assert.Equal(t, "MN", cfg.Pauta.DefaultCurrency)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PSQL_ADDRESS", "postgres://u:p@db:5432/pautas?sslmode=disable")
	t.Setenv("PSQL_MAX_CONNS", "25")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PAUTA_DEFAULT_TAX_OPTION", "Exento")
	t.Setenv("PAUTA_DEFAULT_CURRENCY", "USD")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, "db:5432", cfg.Psql.Addr.Host)
	assert.Equal(t, int32(25), cfg.Psql.MaxConns)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "Exento", cfg.Pauta.DefaultTaxOption)
}

func TestLoadRejectsUnknownDefaults(t *testing.T) {
	t.Setenv("PAUTA_DEFAULT_TAX_OPTION", "21%")
	_, err := Load()
	assert.ErrorContains(t, err, "PAUTA_DEFAULT_TAX_OPTION")
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}
