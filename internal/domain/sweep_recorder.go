package domain

import (
	"context"
	"time"
)

type SweepRecord struct {
	RunID      string
	Trigger    string
	StartedAt  time.Time
	Duration   time.Duration
	Today      Day
	WindowDays int
	Seen       int
	Upcoming   int
	Overdue    int
	Created    int
	Skipped    int
	Failed     int
}

type SweepRecorder interface {
	RecordSweep(ctx context.Context, record SweepRecord) error
	Close() error
}
