package config

import (
	"log/slog"
	"os"
	"strings"
)

type AlertStore string

const (
	AlertStoreRedis    AlertStore = "redis"
	AlertStorePostgres AlertStore = "postgres"
)

type EquipmentSource string

const (
	EquipmentSourcePostgres EquipmentSource = "postgres"
	EquipmentSourceRegistry EquipmentSource = "registry"
)

type Config struct {
	Port                 string
	LogLevel             slog.Level
	AlertStore           AlertStore
	EquipmentSource      EquipmentSource
	EquipmentRegistryURL string
	Redis                *RedisConfig
	Postgres             *PostgresConfig
	Reconcile            *ReconcileConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	alertStore := AlertStoreRedis
	if v := os.Getenv("ALERT_STORE"); v != "" {
		alertStore = AlertStore(strings.ToLower(v))
	}

	equipmentSource := EquipmentSourcePostgres
	if v := os.Getenv("EQUIPMENT_SOURCE"); v != "" {
		equipmentSource = EquipmentSource(strings.ToLower(v))
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	postgresConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, err
	}

	reconcileConfig, err := LoadReconcileConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 port,
		LogLevel:             ParseLogLevel(os.Getenv("LOG_LEVEL")),
		AlertStore:           alertStore,
		EquipmentSource:      equipmentSource,
		EquipmentRegistryURL: os.Getenv("EQUIPMENT_REGISTRY_URL"),
		Redis:                redisConfig,
		Postgres:             postgresConfig,
		Reconcile:            reconcileConfig,
	}, nil
}

// UsesPostgres reports whether any component needs the database.
func (c *Config) UsesPostgres() bool {
	return c.AlertStore == AlertStorePostgres || c.EquipmentSource == EquipmentSourcePostgres
}

func (c *Config) UsesRedis() bool {
	return c.AlertStore == AlertStoreRedis
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
