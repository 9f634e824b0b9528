package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reconcileMeterName = "reconcile.service"
)

type ReconcileMetrics struct {
	sweepsTotal      metric.Int64Counter
	sweepDuration    metric.Float64Histogram
	alertsCreated    metric.Int64Counter
	equipmentSkipped metric.Int64Counter
	equipmentFailed  metric.Int64Counter
}

func NewReconcileMetrics() (*ReconcileMetrics, error) {
	meter := otel.Meter(reconcileMeterName)

	sweepsTotal, err := meter.Int64Counter(
		"reconcile_sweeps_total",
		metric.WithDescription("Total number of reconciliation sweeps"),
		metric.WithUnit("{sweep}"),
	)
	if err != nil {
		return nil, err
	}

	sweepDuration, err := meter.Float64Histogram(
		"reconcile_sweep_duration_seconds",
		metric.WithDescription("Reconciliation sweep duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	alertsCreated, err := meter.Int64Counter(
		"reconcile_alerts_created_total",
		metric.WithDescription("Total number of maintenance alerts inserted"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	equipmentSkipped, err := meter.Int64Counter(
		"reconcile_equipment_skipped_total",
		metric.WithDescription("Equipment skipped because the due date could not be normalized"),
		metric.WithUnit("{equipment}"),
	)
	if err != nil {
		return nil, err
	}

	equipmentFailed, err := meter.Int64Counter(
		"reconcile_equipment_failed_total",
		metric.WithDescription("Equipment whose alert could not be written"),
		metric.WithUnit("{equipment}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReconcileMetrics{
		sweepsTotal:      sweepsTotal,
		sweepDuration:    sweepDuration,
		alertsCreated:    alertsCreated,
		equipmentSkipped: equipmentSkipped,
		equipmentFailed:  equipmentFailed,
	}, nil
}

func (m *ReconcileMetrics) RecordSweep(ctx context.Context, trigger, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("trigger", trigger),
		attribute.String("outcome", outcome),
	)
	m.sweepsTotal.Add(ctx, 1, attrs)
	m.sweepDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *ReconcileMetrics) RecordAlertCreated(ctx context.Context, category string) {
	m.alertsCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *ReconcileMetrics) RecordEquipmentSkipped(ctx context.Context) {
	m.equipmentSkipped.Add(ctx, 1)
}

func (m *ReconcileMetrics) RecordEquipmentFailed(ctx context.Context, stage string) {
	m.equipmentFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}
