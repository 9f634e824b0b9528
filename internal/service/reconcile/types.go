package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

// Trigger names what started a sweep.
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerSchedule Trigger = "schedule"
	TriggerMutation Trigger = "mutation"
	TriggerManual   Trigger = "manual"
)

func (t Trigger) String() string {
	return string(t)
}

// Stage names the step of per-equipment processing an error came from.
type Stage string

const (
	StageParse Stage = "parse"
	StageStore Stage = "store"
)

// ErrSnapshotRead means the equipment set could not be read and no sweep ran.
var ErrSnapshotRead = errors.New("failed to read equipment snapshot")

type EntityError struct {
	EquipmentID string
	Stage       Stage
	Err         error
}

func (e EntityError) Error() string {
	return fmt.Sprintf("equipment %s (%s): %v", e.EquipmentID, e.Stage, e.Err)
}

func (e EntityError) Unwrap() error {
	return e.Err
}

type Report struct {
	RunID      string
	Trigger    Trigger
	Today      domain.Day
	WindowDays int
	StartedAt  time.Time
	Duration   time.Duration

	// Seen counts equipment that produced an alerting category.
	Seen     int
	Upcoming int
	Overdue  int
	Created  int
	Skipped  int
	Failed   int

	Errors []EntityError
}

func (r *Report) record() domain.SweepRecord {
	return domain.SweepRecord{
		RunID:      r.RunID,
		Trigger:    r.Trigger.String(),
		StartedAt:  r.StartedAt,
		Duration:   r.Duration,
		Today:      r.Today,
		WindowDays: r.WindowDays,
		Seen:       r.Seen,
		Upcoming:   r.Upcoming,
		Overdue:    r.Overdue,
		Created:    r.Created,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
	}
}

type outcome struct {
	category domain.Category
	inserted bool
	err      *EntityError
}

func (r *Report) apply(o outcome) {
	if o.err != nil {
		r.Errors = append(r.Errors, *o.err)
		switch o.err.Stage {
		case StageParse:
			r.Skipped++
			return
		case StageStore:
			r.Failed++
		}
	}

	if !o.category.Alerting() {
		return
	}
	r.Seen++

	if !o.inserted {
		return
	}
	r.Created++
	switch o.category {
	case domain.CategoryUpcoming:
		r.Upcoming++
	case domain.CategoryOverdue:
		r.Overdue++
	}
}
