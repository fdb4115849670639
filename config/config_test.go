package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "app:\n  env: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "TKT", cfg.Tickets.Prefix)
	assert.Equal(t, 30, cfg.Tickets.SeatRows)
	assert.Equal(t, 6, cfg.Tickets.SeatsPerRow)
	assert.Equal(t, 60, cfg.Catalog.SearchCacheTTLSeconds)
}

func TestLoadConfig_Full(t *testing.T) {
	body := `
http:
  address: ":9000"
storage:
  driver: postgres
database:
  host: db
  port: 5433
  user: app
  password: "p@ss"
  name: flights
  migrate: true
kafka:
  enabled: true
  brokers: ["kafka:9092"]
  booking_topic: bookings
  notifications_topic: notifications
`
	cfg, err := LoadConfig(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, "host=db port=5433 user=app password=p@ss dbname=flights sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "pgx5://app:p%40ss@db:5433/flights?sslmode=disable", cfg.Database.URL("pgx5"))
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "notifications", cfg.Kafka.NotificationsTopic)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "storage:\n  driver: mongo\n"))
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = LoadConfig(writeConfig(t, "kafka:\n  enabled: true\n"))
	assert.ErrorContains(t, err, "no brokers")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
