package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	reconcileWindowDaysEnv   = "RECONCILE_WINDOW_DAYS"
	reconcileScheduleEnv     = "RECONCILE_SCHEDULE"
	reconcileTimezoneEnv     = "RECONCILE_TIMEZONE"
	reconcileConcurrencyEnv  = "RECONCILE_CONCURRENCY"
	reconcileOnStartupEnv    = "RECONCILE_ON_STARTUP"
	reconcileWriteTimeoutEnv = "RECONCILE_WRITE_TIMEOUT"

	defaultReconcileWindowDays   = 30
	defaultReconcileSchedule     = "0 8 * * *"
	defaultReconcileTimezone     = "America/Santiago"
	defaultReconcileConcurrency  = 4
	defaultReconcileOnStartup    = true
	defaultReconcileWriteTimeout = 5 * time.Second
)

type ReconcileConfig struct {
	// WindowDays is shared by every sweep trigger.
	WindowDays   int
	Schedule     string
	Timezone     string
	Location     *time.Location
	Concurrency  int
	OnStartup    bool
	WriteTimeout time.Duration
}

// LoadReconcileConfig reads the sweep settings. Unset or empty variables take
// their defaults; set but invalid ones are reported together.
func LoadReconcileConfig() (*ReconcileConfig, error) {
	var errs []error

	cfg := &ReconcileConfig{
		WindowDays:   defaultReconcileWindowDays,
		Schedule:     defaultReconcileSchedule,
		Timezone:     defaultReconcileTimezone,
		Concurrency:  defaultReconcileConcurrency,
		OnStartup:    defaultReconcileOnStartup,
		WriteTimeout: defaultReconcileWriteTimeout,
	}

	if v := os.Getenv(reconcileWindowDaysEnv); v != "" {
		n, err := parsePositiveInt(reconcileWindowDaysEnv, v)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.WindowDays = n
	}

	if v := os.Getenv(reconcileConcurrencyEnv); v != "" {
		n, err := parsePositiveInt(reconcileConcurrencyEnv, v)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.Concurrency = n
	}

	if v := os.Getenv(reconcileScheduleEnv); v != "" {
		cfg.Schedule = v
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		errs = append(errs, &ConfigurationError{
			Key:   reconcileScheduleEnv,
			Value: cfg.Schedule,
			Err:   fmt.Errorf("%w: %w", ErrInvalidSchedule, err),
		})
	}

	if v := os.Getenv(reconcileTimezoneEnv); v != "" {
		cfg.Timezone = v
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		errs = append(errs, &ConfigurationError{Key: reconcileTimezoneEnv, Value: cfg.Timezone, Err: ErrInvalidTimezone})
	}
	cfg.Location = loc

	if v := os.Getenv(reconcileOnStartupEnv); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, &ConfigurationError{Key: reconcileOnStartupEnv, Value: v, Err: ErrInvalidBoolean})
		}
		cfg.OnStartup = b
	}

	if v := os.Getenv(reconcileWriteTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, &ConfigurationError{Key: reconcileWriteTimeoutEnv, Value: v, Err: ErrInvalidDuration})
		}
		cfg.WriteTimeout = d
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("reconcile configuration errors: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func parsePositiveInt(key, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigurationError{Key: key, Value: raw, Err: ErrInvalidValue}
	}
	if n <= 0 {
		return 0, &ConfigurationError{Key: key, Value: raw, Err: ErrNonPositive}
	}
	return n, nil
}
