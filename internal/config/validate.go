package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks that every backend the selected stores need is
// configured.
func ValidateForRun(cfg *Config) error {
	var errs []error

	switch cfg.AlertStore {
	case AlertStoreRedis:
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	case AlertStorePostgres:
	default:
		errs = append(errs, &ConfigurationError{Key: "ALERT_STORE", Value: string(cfg.AlertStore), Err: ErrUnknownAlertStore})
	}

	switch cfg.EquipmentSource {
	case EquipmentSourcePostgres:
	case EquipmentSourceRegistry:
		if cfg.EquipmentRegistryURL == "" {
			errs = append(errs, ErrRegistryURLMissing)
		}
	default:
		errs = append(errs, &ConfigurationError{Key: "EQUIPMENT_SOURCE", Value: string(cfg.EquipmentSource), Err: ErrUnknownEquipmentSource})
	}

	if cfg.UsesPostgres() {
		if err := cfg.Postgres.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
