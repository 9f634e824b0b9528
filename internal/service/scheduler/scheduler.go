package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/reconcile"
)

type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// ConfigurationError reports a cadence or timezone that cannot be scheduled.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid scheduler %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ErrTimezoneMismatch means the cadence zone differs from the zone the
// reconciler derives "today" in.
var ErrTimezoneMismatch = errors.New("timezone differs from the reconcile reference location")

// Reconciler is the part of the reconcile service the scheduler drives.
type Reconciler interface {
	Reconcile(ctx context.Context, trigger reconcile.Trigger) (*reconcile.Report, error)
	ReconcileEquipment(ctx context.Context, trigger reconcile.Trigger, ids []string) (*reconcile.Report, error)
	// Location is the zone of the sweep's reference day. Nil means any zone.
	Location() *time.Location
}

// Scheduler owns at most one recurring cron at a time.
type Scheduler struct {
	reconciler Reconciler

	mu       sync.Mutex
	cron     *cron.Cron
	cadence  string
	timezone string

	// baseCtx scopes scheduled runs. Stop does not cancel it.
	baseCtx context.Context
}

func New(baseCtx context.Context, reconciler Reconciler) *Scheduler {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Scheduler{
		reconciler: reconciler,
		baseCtx:    baseCtx,
	}
}

// Start installs the recurring sweep. A running cron is stopped before the
// new one is scheduled, and is left untouched when the new configuration is
// invalid.
func (s *Scheduler) Start(cadence, timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return &ConfigurationError{Field: "timezone", Value: timezone, Err: err}
	}
	if ref := s.reconciler.Location(); ref != nil && ref.String() != loc.String() {
		return &ConfigurationError{
			Field: "timezone",
			Value: timezone,
			Err:   fmt.Errorf("%w (%s)", ErrTimezoneMismatch, ref),
		}
	}

	schedule, err := cron.ParseStandard(cadence)
	if err != nil {
		return &ConfigurationError{Field: "cadence", Value: cadence, Err: err}
	}

	next := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	next.Schedule(schedule, cron.FuncJob(s.runScheduled))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
		slog.Info("previous reconcile schedule stopped",
			slog.String("event", "scheduler.restart"),
			slog.String("cadence", s.cadence),
			slog.String("timezone", s.timezone),
		)
	}

	s.cron = next
	s.cadence = cadence
	s.timezone = timezone
	next.Start()

	slog.Info("reconcile schedule started",
		slog.String("event", "scheduler.start"),
		slog.String("cadence", cadence),
		slog.String("timezone", timezone),
		slog.Time("next_run", schedule.Next(time.Now().In(loc))),
	)

	return nil
}

// Stop prevents future ticks. The returned context is done once a running
// scheduled sweep has finished.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	done := s.cron.Stop()
	s.cron = nil

	slog.Info("reconcile schedule stopped",
		slog.String("event", "scheduler.stop"),
		slog.String("cadence", s.cadence),
	)

	return done
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return StateStopped
	}
	return StateRunning
}

// TriggerNow runs a sweep synchronously in the caller's context. With ids only
// that equipment is reconciled.
func (s *Scheduler) TriggerNow(ctx context.Context, trigger reconcile.Trigger, ids ...string) (*reconcile.Report, error) {
	if len(ids) > 0 {
		return s.reconciler.ReconcileEquipment(ctx, trigger, ids)
	}
	return s.reconciler.Reconcile(ctx, trigger)
}

// RunAtStartup sweeps once in the background. Failures are logged only.
func (s *Scheduler) RunAtStartup(ctx context.Context) {
	go func() {
		if _, err := s.reconciler.Reconcile(ctx, reconcile.TriggerStartup); err != nil {
			slog.ErrorContext(ctx, "startup reconcile failed",
				slog.String("event", "scheduler.startup.fail"),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *Scheduler) runScheduled() {
	if _, err := s.reconciler.Reconcile(s.baseCtx, reconcile.TriggerSchedule); err != nil {
		slog.ErrorContext(s.baseCtx, "scheduled reconcile failed",
			slog.String("event", "scheduler.tick.fail"),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Scheduler) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}
