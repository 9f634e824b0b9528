//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/logging"
)

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "maintenance-alerts"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		LogLevel:      level,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
