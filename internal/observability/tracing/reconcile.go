package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reconcileTracerName = "github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/reconcile"

func ReconcileTracer() trace.Tracer {
	return otel.Tracer(reconcileTracerName)
}

func StartSweepSpan(ctx context.Context, trigger, today string, windowDays, equipmentCount int) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.sweep",
		trace.WithAttributes(
			attribute.String("sweep.trigger", trigger),
			attribute.String("sweep.today", today),
			attribute.Int("sweep.window_days", windowDays),
			attribute.Int("sweep.equipment_count", equipmentCount),
		),
	)
}

func StartSnapshotSpan(ctx context.Context, trigger string) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.snapshot",
		trace.WithAttributes(
			attribute.String("sweep.trigger", trigger),
		),
	)
}

func StartUpsertSpan(ctx context.Context, equipmentID, alertKey string) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.upsert",
		trace.WithAttributes(
			attribute.String("equipment_id", equipmentID),
			attribute.String("alert_key", alertKey),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordSweepResult(span trace.Span, seen, upcoming, overdue, created, skipped, failed int) {
	span.SetAttributes(
		attribute.Int("sweep.seen", seen),
		attribute.Int("sweep.upcoming", upcoming),
		attribute.Int("sweep.overdue", overdue),
		attribute.Int("sweep.created", created),
		attribute.Int("sweep.skipped", skipped),
		attribute.Int("sweep.failed", failed),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
