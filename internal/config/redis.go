package config

import (
	"os"
	"strconv"
)

const (
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"
	redisPoolSizeEnv = "REDIS_POOL_SIZE"

	defaultRedisAddr = "localhost:6379"
	defaultRedisDB   = 0
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	// PoolSize of 0 keeps the go-redis default.
	PoolSize int
}

// LoadRedisConfig reads the alert store connection settings. It is loaded
// even when Redis is unused; ValidateForRun decides whether it matters.
func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     os.Getenv(redisAddrEnv),
		Password: os.Getenv(redisPasswordEnv),
		DB:       defaultRedisDB,
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, &ConfigurationError{Key: redisDBEnv, Value: raw, Err: ErrInvalidRedisDB}
		}
		cfg.DB = db
	}

	if raw := os.Getenv(redisTLSEnv); raw != "" {
		useTLS, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &ConfigurationError{Key: redisTLSEnv, Value: raw, Err: ErrInvalidBoolean}
		}
		cfg.TLS = useTLS
	}

	if raw := os.Getenv(redisPoolSizeEnv); raw != "" {
		size, err := parsePositiveInt(redisPoolSizeEnv, raw)
		if err != nil {
			return nil, err
		}
		cfg.PoolSize = size
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
