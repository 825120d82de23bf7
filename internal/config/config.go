package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseURLKeys are checked in order; the first non-empty value wins.
var DatabaseURLKeys = []string{
	"PRODUCTS_DATABASE_URL",
	"PRODUCTS_DB_URL",
	"DATABASE_URL",
	"MYSQL_URL",
	"POSTGRES_URL",
}

// Config holds the service configuration.
type Config struct {
	AppPort       string
	DatabaseURL   string // empty selects the SQLite file under DataDir
	DataDir       string
	SeedOnStartup bool
	RabbitMQURL   string // empty disables event publishing
	RabbitMQQueue string
	LogLevel      string
	LogFormat     string
}

// Load reads configuration from the environment and, if present, a
// config.yaml in the working directory.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v. Tests pass their own instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATA_DIR", "/data")
	v.SetDefault("SEED_ON_STARTUP", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	for _, key := range DatabaseURLKeys {
		v.SetDefault(key, "")
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv() // Load environment variables

	cfg := &Config{
		AppPort:       v.GetString("APP_PORT"),
		DataDir:       v.GetString("DATA_DIR"),
		SeedOnStartup: v.GetBool("SEED_ON_STARTUP"),
		RabbitMQURL:   strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		RabbitMQQueue: v.GetString("RABBITMQ_QUEUE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
	}
	for _, key := range DatabaseURLKeys {
		if val := strings.TrimSpace(v.GetString(key)); val != "" {
			cfg.DatabaseURL = val
			break
		}
	}
	if cfg.AppPort == "" {
		return nil, errors.New("APP_PORT must not be empty")
	}
	return cfg, nil
}
