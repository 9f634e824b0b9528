package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/duedate"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/reconcile"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/window"
)

type fakeReconciler struct {
	mu       sync.Mutex
	triggers []reconcile.Trigger
	ids      [][]string
	calls    atomic.Int32
	err      error
	loc      *time.Location
	done     chan struct{}
}

func newFakeReconciler() *fakeReconciler {
	return &fakeReconciler{done: make(chan struct{}, 16)}
}

func (f *fakeReconciler) Reconcile(_ context.Context, trigger reconcile.Trigger) (*reconcile.Report, error) {
	return f.record(trigger, nil)
}

func (f *fakeReconciler) ReconcileEquipment(_ context.Context, trigger reconcile.Trigger, ids []string) (*reconcile.Report, error) {
	return f.record(trigger, ids)
}

func (f *fakeReconciler) Location() *time.Location {
	return f.loc
}

func (f *fakeReconciler) record(trigger reconcile.Trigger, ids []string) (*reconcile.Report, error) {
	f.mu.Lock()
	f.triggers = append(f.triggers, trigger)
	f.ids = append(f.ids, ids)
	f.mu.Unlock()

	f.calls.Add(1)
	defer func() { f.done <- struct{}{} }()

	if f.err != nil {
		return nil, f.err
	}
	return &reconcile.Report{Trigger: trigger}, nil
}

func TestStart_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		cadence   string
		timezone  string
		wantField string
	}{
		{name: "bad cadence", cadence: "not a cron", timezone: "UTC", wantField: "cadence"},
		{name: "too many fields", cadence: "0 0 8 * * *", timezone: "UTC", wantField: "cadence"},
		{name: "bad timezone", cadence: "0 8 * * *", timezone: "Mars/Olympus", wantField: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(context.Background(), newFakeReconciler())

			err := s.Start(tt.cadence, tt.timezone)

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if s.State() != StateStopped {
				t.Errorf("State = %s, want %s", s.State(), StateStopped)
			}
		})
	}
}

func TestStart_InvalidConfigurationKeepsRunningSchedule(t *testing.T) {
	s := New(context.Background(), newFakeReconciler())

	if err := s.Start("0 8 * * *", "UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if err := s.Start("bogus", "UTC"); err == nil {
		t.Fatal("expected error")
	}

	if s.State() != StateRunning {
		t.Errorf("State = %s, want %s", s.State(), StateRunning)
	}
	if s.cadence != "0 8 * * *" {
		t.Errorf("cadence = %q, want the previous schedule", s.cadence)
	}
}

func TestStateTransitions(t *testing.T) {
	s := New(context.Background(), newFakeReconciler())

	if s.State() != StateStopped {
		t.Fatalf("initial State = %s, want %s", s.State(), StateStopped)
	}

	if err := s.Start("0 8 * * *", "UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != StateRunning {
		t.Errorf("State after start = %s, want %s", s.State(), StateRunning)
	}

	if err := s.Start("30 9 * * *", "UTC"); err != nil {
		t.Fatalf("unexpected error on restart: %v", err)
	}
	if s.State() != StateRunning {
		t.Errorf("State after restart = %s, want %s", s.State(), StateRunning)
	}
	if got := s.entryCount(); got != 1 {
		t.Errorf("entries after restart = %d, want 1", got)
	}

	<-s.Stop().Done()
	if s.State() != StateStopped {
		t.Errorf("State after stop = %s, want %s", s.State(), StateStopped)
	}

	<-s.Stop().Done()
}

func TestStart_RestartLeavesSingleTimer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	rec := newFakeReconciler()
	s := New(context.Background(), rec)

	if err := s.Start("@every 1s", "UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start("@every 2s", "UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(2500 * time.Millisecond)
	<-s.Stop().Done()

	if got := rec.calls.Load(); got != 1 {
		t.Errorf("scheduled runs = %d, want 1", got)
	}
	for _, trigger := range rec.triggers {
		if trigger != reconcile.TriggerSchedule {
			t.Errorf("trigger = %s, want %s", trigger, reconcile.TriggerSchedule)
		}
	}
}

func TestTriggerNow(t *testing.T) {
	t.Run("full sweep while stopped", func(t *testing.T) {
		rec := newFakeReconciler()
		s := New(context.Background(), rec)

		report, err := s.TriggerNow(context.Background(), reconcile.TriggerManual)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Trigger != reconcile.TriggerManual {
			t.Errorf("Trigger = %s, want %s", report.Trigger, reconcile.TriggerManual)
		}
		if s.State() != StateStopped {
			t.Errorf("TriggerNow must not change state, got %s", s.State())
		}
	})

	t.Run("subset while running", func(t *testing.T) {
		rec := newFakeReconciler()
		s := New(context.Background(), rec)
		if err := s.Start("0 8 * * *", "America/Santiago"); err != nil {
			t.Skipf("timezone data unavailable: %v", err)
		}
		defer s.Stop()

		if _, err := s.TriggerNow(context.Background(), reconcile.TriggerMutation, "e1", "e2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rec.mu.Lock()
		defer rec.mu.Unlock()
		if len(rec.ids) != 1 || len(rec.ids[0]) != 2 {
			t.Errorf("expected one subset call with 2 ids, got %v", rec.ids)
		}
		if s.State() != StateRunning {
			t.Errorf("TriggerNow must not change state, got %s", s.State())
		}
	})

	t.Run("propagates sweep error", func(t *testing.T) {
		rec := newFakeReconciler()
		rec.err = reconcile.ErrSnapshotRead
		s := New(context.Background(), rec)

		if _, err := s.TriggerNow(context.Background(), reconcile.TriggerManual); !errors.Is(err, reconcile.ErrSnapshotRead) {
			t.Errorf("expected ErrSnapshotRead, got %v", err)
		}
	})
}

func TestRunAtStartup_ErrorIsNotFatal(t *testing.T) {
	rec := newFakeReconciler()
	rec.err = errors.New("store down")
	s := New(context.Background(), rec)

	s.RunAtStartup(context.Background())

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("startup sweep did not run")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.triggers) != 1 || rec.triggers[0] != reconcile.TriggerStartup {
		t.Errorf("triggers = %v, want [startup]", rec.triggers)
	}
}

func TestStart_RejectsTimezoneOtherThanReferenceLocation(t *testing.T) {
	rec := newFakeReconciler()
	rec.loc = time.UTC
	s := New(context.Background(), rec)

	if err := s.Start("0 8 * * *", "UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	err := s.Start("0 9 * * *", "America/Santiago")

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "timezone" {
		t.Errorf("Field = %q, want timezone", cfgErr.Field)
	}
	if !errors.Is(err, ErrTimezoneMismatch) {
		t.Errorf("expected ErrTimezoneMismatch, got %v", err)
	}

	s.mu.Lock()
	cadence, timezone := s.cadence, s.timezone
	s.mu.Unlock()
	if cadence != "0 8 * * *" || timezone != "UTC" {
		t.Errorf("running schedule changed to %q in %q", cadence, timezone)
	}
	if s.State() != StateRunning || s.entryCount() != 1 {
		t.Errorf("State = %s entries = %d, want running with 1 entry", s.State(), s.entryCount())
	}
}

func TestStart_FollowsReconcileServiceLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	svc := reconcile.NewService(nil, nil, duedate.NewNormalizer(loc), window.NewClassifier(30), nil, nil, reconcile.Options{})
	s := New(context.Background(), svc)

	if err := s.Start("0 8 * * *", "UTC"); !errors.Is(err, ErrTimezoneMismatch) {
		t.Fatalf("expected ErrTimezoneMismatch, got %v", err)
	}
	if s.State() != StateStopped {
		t.Errorf("State = %s, want %s", s.State(), StateStopped)
	}

	if err := s.Start("0 8 * * *", "America/Santiago"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()
	if s.State() != StateRunning {
		t.Errorf("State = %s, want %s", s.State(), StateRunning)
	}
}
