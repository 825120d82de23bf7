package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsapi/internal/config"
)

func clearDatabaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range config.DatabaseURLKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearDatabaseEnv(t)
	for _, key := range []string{"APP_PORT", "DATA_DIR", "SEED_ON_STARTUP", "RABBITMQ_URL", "RABBITMQ_QUEUE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.True(t, cfg.SeedOnStartup)
	assert.Equal(t, "", cfg.RabbitMQURL)
	assert.Equal(t, "product_events", cfg.RabbitMQQueue)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_DatabaseURLPrecedence(t *testing.T) {
	clearDatabaseEnv(t)
	t.Setenv("DATABASE_URL", "postgres://generic/db")
	t.Setenv("POSTGRES_URL", "postgres://last/db")

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "postgres://generic/db", cfg.DatabaseURL)

	t.Setenv("PRODUCTS_DATABASE_URL", "  postgres://specific/db  ")
	cfg, err = config.LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "postgres://specific/db", cfg.DatabaseURL)
}

func TestLoad_BlankCandidatesAreSkipped(t *testing.T) {
	clearDatabaseEnv(t)
	t.Setenv("PRODUCTS_DATABASE_URL", "   ")
	t.Setenv("MYSQL_URL", "mysql://db/products")

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "mysql://db/products", cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	clearDatabaseEnv(t)
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATA_DIR", "/tmp/products")
	t.Setenv("SEED_ON_STARTUP", "false")
	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "/tmp/products", cfg.DataDir)
	assert.False(t, cfg.SeedOnStartup)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQURL)
	assert.Equal(t, "json", cfg.LogFormat)
}
