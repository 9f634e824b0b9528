//go:build gcloud

package sweeprecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time  `bigquery:"recorded_at"`
	StartedAt  time.Time  `bigquery:"started_at"`
	RunID      string     `bigquery:"run_id"`
	Trigger    string     `bigquery:"trigger"`
	Today      civil.Date `bigquery:"today"`
	WindowDays int64      `bigquery:"window_days"`
	Seen       int64      `bigquery:"seen"`
	Upcoming   int64      `bigquery:"upcoming"`
	Overdue    int64      `bigquery:"overdue"`
	Created    int64      `bigquery:"created"`
	Skipped    int64      `bigquery:"skipped"`
	Failed     int64      `bigquery:"failed"`
	DurationMS int64      `bigquery:"duration_ms"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SweepRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, sweep result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "sweep result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordSweep(ctx context.Context, record domain.SweepRecord) error {
	row := &bigQueryRecord{
		RecordedAt: time.Now(),
		StartedAt:  record.StartedAt,
		RunID:      record.RunID,
		Trigger:    record.Trigger,
		Today:      civil.Date{Year: record.Today.Year, Month: record.Today.Month, Day: record.Today.Day},
		WindowDays: int64(record.WindowDays),
		Seen:       int64(record.Seen),
		Upcoming:   int64(record.Upcoming),
		Overdue:    int64(record.Overdue),
		Created:    int64(record.Created),
		Skipped:    int64(record.Skipped),
		Failed:     int64(record.Failed),
		DurationMS: record.Duration.Milliseconds(),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("insert sweep row: %w", err)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
