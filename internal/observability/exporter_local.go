//go:build !gcloud

package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// Exporters are only created when a collector endpoint is configured.

func newTraceExporter(ctx context.Context, _ Config) (sdktrace.SpanExporter, error) {
	if os.Getenv(otlpEndpointEnv) == "" {
		return nil, nil
	}
	return otlptracehttp.New(ctx)
}

func newMetricExporter(ctx context.Context, _ Config) (sdkmetric.Exporter, error) {
	if os.Getenv(otlpEndpointEnv) == "" {
		return nil, nil
	}
	return otlpmetrichttp.New(ctx)
}
