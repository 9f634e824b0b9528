//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/logging"
)

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "maintenance-alerts"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		LogLevel:      level,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
