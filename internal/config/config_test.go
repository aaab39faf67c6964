package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "secret"

[storage]
driver = "memory"

[events]
driver = "kafka"

[events.kafka]
brokers = ["kafka-1:9092", "kafka-2:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, "arena.bookings", cfg.Events.Kafka.Topic)
	assert.Equal(t, "America/Sao_Paulo", cfg.Booking.Timezone)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=arena sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "from-file"

[booking]
timezone = "UTC"
`)

	t.Setenv("ARENA_DATABASE_PASSWORD", "from-env")
	t.Setenv("ARENA_SERVER_HTTP_PORT", "7070")
	t.Setenv("ARENA_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown storage driver", content: "[storage]\ndriver = \"mongo\"\n"},
		{name: "rabbitmq without url", content: "[events]\ndriver = \"rabbitmq\"\n"},
		{name: "unknown timezone", content: "[booking]\ntimezone = \"Mars/Olympus\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
