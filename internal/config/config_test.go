package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "RUB", cfg.Payment.Currency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("ADMIN_IDS", "100,200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []int64{100, 200}, cfg.Bot.AdminIDs)
}

func TestLoad_BadAdminIDs(t *testing.T) {
	t.Setenv("ADMIN_IDS", "100,abc")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadPostgresPort(t *testing.T) {
	t.Setenv("POSTGRES_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
