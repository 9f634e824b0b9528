package config

import (
	"os"
	"strconv"
)

const (
	databaseURLEnv = "DATABASE_URL"
	dbMaxConnsEnv  = "DB_MAX_CONNS"
	dbMinConnsEnv  = "DB_MIN_CONNS"

	defaultDBMaxConns = 8
	defaultDBMinConns = 1
)

type PostgresConfig struct {
	DatabaseURL string
	MaxConns    int
	MinConns    int
}

func LoadPostgresConfig() (*PostgresConfig, error) {
	maxConns := defaultDBMaxConns
	if raw := os.Getenv(dbMaxConnsEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidDBMaxConns
		}
		maxConns = parsed
	}

	minConns := defaultDBMinConns
	if raw := os.Getenv(dbMinConnsEnv); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			minConns = parsed
		}
	}

	return &PostgresConfig{
		DatabaseURL: os.Getenv(databaseURLEnv),
		MaxConns:    maxConns,
		MinConns:    minConns,
	}, nil
}

func (c *PostgresConfig) Validate() error {
	if c == nil || c.DatabaseURL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}
