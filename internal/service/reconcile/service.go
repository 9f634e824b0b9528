package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/metrics"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/tracing"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/duedate"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/window"
)

const (
	DefaultConcurrency  = 4
	DefaultWriteTimeout = 5 * time.Second
)

type Options struct {
	Concurrency  int
	WriteTimeout time.Duration
	// Now overrides the clock used to derive the reference day.
	Now func() time.Time
}

type Service struct {
	alertRepo        domain.AlertRepository
	equipmentSource  domain.EquipmentSource
	normalizer       *duedate.Normalizer
	classifier       *window.Classifier
	reconcileMetrics *metrics.ReconcileMetrics
	sweepRecorder    domain.SweepRecorder
	concurrency      int
	writeTimeout     time.Duration
	now              func() time.Time
}

func NewService(
	alertRepo domain.AlertRepository,
	equipmentSource domain.EquipmentSource,
	normalizer *duedate.Normalizer,
	classifier *window.Classifier,
	reconcileMetrics *metrics.ReconcileMetrics,
	sweepRecorder domain.SweepRecorder,
	opts Options,
) *Service {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	writeTimeout := opts.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = DefaultWriteTimeout
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		alertRepo:        alertRepo,
		equipmentSource:  equipmentSource,
		normalizer:       normalizer,
		classifier:       classifier,
		reconcileMetrics: reconcileMetrics,
		sweepRecorder:    sweepRecorder,
		concurrency:      concurrency,
		writeTimeout:     writeTimeout,
		now:              now,
	}
}

// Location is the zone the sweep's reference day is computed in.
func (s *Service) Location() *time.Location {
	return s.normalizer.Location()
}

// Reconcile sweeps every equipment that carries a due date. It only fails
// when the equipment set cannot be read.
func (s *Service) Reconcile(ctx context.Context, trigger Trigger) (*Report, error) {
	snapshotCtx, span := tracing.StartSnapshotSpan(ctx, trigger.String())
	equipment, err := s.equipmentSource.ListWithDueDate(snapshotCtx)
	if err != nil {
		tracing.RecordError(span, err)
		span.End()
		return nil, s.snapshotFailed(ctx, trigger, err)
	}
	span.End()

	slog.DebugContext(ctx, "fetched equipment snapshot",
		slog.String("trigger", trigger.String()),
		slog.Int("equipment_count", len(equipment)),
	)

	return s.Sweep(ctx, trigger, equipment), nil
}

// ReconcileEquipment sweeps only the given equipment. An empty id list means
// a full sweep.
func (s *Service) ReconcileEquipment(ctx context.Context, trigger Trigger, ids []string) (*Report, error) {
	if len(ids) == 0 {
		return s.Reconcile(ctx, trigger)
	}

	snapshotCtx, span := tracing.StartSnapshotSpan(ctx, trigger.String())
	equipment, err := s.equipmentSource.GetByIDs(snapshotCtx, ids)
	if err != nil {
		tracing.RecordError(span, err)
		span.End()
		return nil, s.snapshotFailed(ctx, trigger, err)
	}
	span.End()

	if len(equipment) < len(ids) {
		slog.WarnContext(ctx, "some equipment ids were not found",
			slog.String("trigger", trigger.String()),
			slog.Int("requested", len(ids)),
			slog.Int("found", len(equipment)),
		)
	}

	return s.Sweep(ctx, trigger, equipment), nil
}

func (s *Service) snapshotFailed(ctx context.Context, trigger Trigger, err error) error {
	slog.ErrorContext(ctx, "failed to read equipment snapshot",
		slog.String("event", "reconcile.snapshot.fail"),
		slog.String("trigger", trigger.String()),
		slog.String("error", err.Error()),
	)
	if s.reconcileMetrics != nil {
		s.reconcileMetrics.RecordSweep(ctx, trigger.String(), "failed", 0)
	}
	return fmt.Errorf("%w: %w", ErrSnapshotRead, err)
}

// Sweep classifies each equipment against a single reference day and upserts
// an alert for every alerting category. Per-equipment failures are collected
// in the report and never abort the sweep.
func (s *Service) Sweep(ctx context.Context, trigger Trigger, equipment []domain.Equipment) *Report {
	startedAt := time.Now()
	today := domain.DayOf(s.now().In(s.normalizer.Location()))

	report := &Report{
		RunID:      uuid.NewString(),
		Trigger:    trigger,
		Today:      today,
		WindowDays: s.classifier.WindowDays(),
		StartedAt:  startedAt,
	}

	ctx, span := tracing.StartSweepSpan(ctx, trigger.String(), today.ISO(), report.WindowDays, len(equipment))
	defer span.End()

	slog.InfoContext(ctx, "reconcile sweep started",
		slog.String("event", "reconcile.sweep.start"),
		slog.String("run_id", report.RunID),
		slog.String("trigger", trigger.String()),
		slog.String("today", today.ISO()),
		slog.Int("window_days", report.WindowDays),
		slog.Int("equipment_count", len(equipment)),
	)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, eq := range equipment {
		g.Go(func() error {
			o := s.reconcileOne(ctx, today, eq)

			mu.Lock()
			report.apply(o)
			mu.Unlock()

			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(startedAt)

	tracing.RecordSweepResult(span, report.Seen, report.Upcoming, report.Overdue, report.Created, report.Skipped, report.Failed)

	outcomeLabel := "success"
	if report.Failed > 0 || report.Skipped > 0 {
		outcomeLabel = "partial"
	}
	if s.reconcileMetrics != nil {
		s.reconcileMetrics.RecordSweep(ctx, trigger.String(), outcomeLabel, report.Duration)
	}

	if s.sweepRecorder != nil {
		if err := s.sweepRecorder.RecordSweep(ctx, report.record()); err != nil {
			slog.WarnContext(ctx, "failed to record sweep result",
				slog.String("run_id", report.RunID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "reconcile sweep completed",
		slog.String("event", "reconcile.sweep.complete"),
		slog.String("run_id", report.RunID),
		slog.String("trigger", trigger.String()),
		slog.Int("seen", report.Seen),
		slog.Int("upcoming", report.Upcoming),
		slog.Int("overdue", report.Overdue),
		slog.Int("created", report.Created),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Int("errors", len(report.Errors)),
		slog.Duration("duration", report.Duration),
	)

	return report
}

func (s *Service) reconcileOne(ctx context.Context, today domain.Day, eq domain.Equipment) outcome {
	due, err := s.normalizer.Normalize(eq.NextMaintenance)
	if err != nil {
		slog.WarnContext(ctx, "skipping equipment with invalid due date",
			slog.String("equipment_id", eq.ID),
			slog.String("serial", eq.Serial),
			slog.String("error", err.Error()),
		)
		if s.reconcileMetrics != nil {
			s.reconcileMetrics.RecordEquipmentSkipped(ctx)
		}
		return outcome{err: &EntityError{EquipmentID: eq.ID, Stage: StageParse, Err: err}}
	}

	classification := s.classifier.Classify(due, today)
	if !classification.Category.Alerting() {
		return outcome{category: classification.Category}
	}

	draft := domain.AlertDraft{
		AlertKey:    domain.AlertKey(eq.ID, classification.Category, due),
		Category:    classification.Category,
		Message:     Message(eq, classification.Category, due),
		TargetRoute: domain.EquipmentRoute(eq.ID),
	}

	upsertCtx, span := tracing.StartUpsertSpan(ctx, eq.ID, draft.AlertKey)
	defer span.End()

	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		upsertCtx, cancel = context.WithTimeout(upsertCtx, s.writeTimeout)
		defer cancel()
	}

	result, err := s.alertRepo.UpsertByKey(upsertCtx, draft)
	if err != nil {
		tracing.RecordError(span, err)
		slog.ErrorContext(ctx, "failed to upsert maintenance alert",
			slog.String("equipment_id", eq.ID),
			slog.String("alert_key", draft.AlertKey),
			slog.String("error", err.Error()),
		)
		if s.reconcileMetrics != nil {
			s.reconcileMetrics.RecordEquipmentFailed(ctx, string(StageStore))
		}
		return outcome{
			category: classification.Category,
			err:      &EntityError{EquipmentID: eq.ID, Stage: StageStore, Err: err},
		}
	}

	if result.Inserted {
		if s.reconcileMetrics != nil {
			s.reconcileMetrics.RecordAlertCreated(ctx, classification.Category.String())
		}
		slog.InfoContext(ctx, "maintenance alert created",
			slog.String("equipment_id", eq.ID),
			slog.String("serial", eq.Serial),
			slog.String("category", classification.Category.String()),
			slog.String("due", due.ISO()),
			slog.Int("distance_days", classification.DistanceDays),
		)
	}

	return outcome{category: classification.Category, inserted: result.Inserted}
}
