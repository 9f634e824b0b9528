package sweeprecorder

import (
	"context"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.SweepRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordSweep(_ context.Context, _ domain.SweepRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
