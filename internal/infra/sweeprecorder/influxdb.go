//go:build !gcloud

package sweeprecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

const sweepMeasurement = "reconcile_sweep"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SweepRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "sweep result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, sweep result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "sweep result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func (r *influxDBRecorder) RecordSweep(ctx context.Context, record domain.SweepRecord) error {
	if err := r.writeAPI.WritePoint(ctx, sweepPoint(record)); err != nil {
		return fmt.Errorf("write sweep point: %w", err)
	}
	return nil
}

func sweepPoint(record domain.SweepRecord) *write.Point {
	return influxdb2.NewPoint(
		sweepMeasurement,
		map[string]string{
			"run_id":  record.RunID,
			"trigger": record.Trigger,
			"today":   record.Today.ISO(),
		},
		map[string]any{
			"window_days": record.WindowDays,
			"seen":        record.Seen,
			"upcoming":    record.Upcoming,
			"overdue":     record.Overdue,
			"created":     record.Created,
			"skipped":     record.Skipped,
			"failed":      record.Failed,
			"duration_ms": record.Duration.Milliseconds(),
		},
		record.StartedAt,
	)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
