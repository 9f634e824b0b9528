package config

import (
	"errors"
	"fmt"
)

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing     = errors.New("DATABASE_URL is required")
	ErrRegistryURLMissing     = errors.New("EQUIPMENT_REGISTRY_URL is required")
	ErrUnknownAlertStore      = errors.New("ALERT_STORE must be redis or postgres")
	ErrUnknownEquipmentSource = errors.New("EQUIPMENT_SOURCE must be postgres or registry")
	ErrInvalidDBMaxConns      = errors.New("DB_MAX_CONNS must be a positive integer")
	ErrInvalidValue           = errors.New("invalid value")
	ErrNonPositive            = errors.New("must be a positive integer")
	ErrInvalidTimezone        = errors.New("unknown timezone")
	ErrInvalidSchedule        = errors.New("invalid cron schedule")
	ErrInvalidDuration        = errors.New("must be a positive duration")
	ErrInvalidBoolean         = errors.New("must be true or false")
)

// ConfigurationError identifies an environment variable whose value was
// present but rejected.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
