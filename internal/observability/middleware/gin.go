package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/logging"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/metrics"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/observability/tracing"
)

type GinConfig struct {
	SkipPaths  []string
	Module     logging.Module
	TracerName string
	// Worker marks routes invoked by schedulers or other services rather than users.
	Worker bool
	// JobNameResolver names the unit of work for worker requests.
	JobNameResolver func(c *gin.Context) string
	HTTPMetrics     *metrics.HTTPMetrics
}

// Gin starts a server span, propagates the request id and logs and records
// each request that is not in SkipPaths.
func Gin(cfg GinConfig) gin.HandlerFunc {
	tracer := otel.Tracer(cfg.TracerName)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, path) {
			c.Next()
			return
		}

		start := time.Now()

		ctx := tracing.ExtractFromHTTPRequest(c.Request)

		requestID := logging.ValidateAndExtractRequestID(c.GetHeader(logging.RequestIDHeader))
		ctx = logging.WithRequestID(ctx, requestID)
		c.Header(logging.RequestIDHeader, requestID)

		route := c.FullPath()
		if route == "" {
			route = path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		attrs := []any{
			slog.String("module", string(cfg.Module)),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
		}
		if cfg.Worker && cfg.JobNameResolver != nil {
			job := cfg.JobNameResolver(c)
			span.SetAttributes(attribute.String("job.name", job))
			attrs = append(attrs, slog.String("job", job))
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		if cfg.HTTPMetrics != nil {
			cfg.HTTPMetrics.RecordRequest(ctx, c.Request.Method, route, status, duration)
		}

		attrs = append(attrs,
			slog.String("event", "http.request.complete"),
			slog.Int("status", status),
			slog.Int64("duration_ms", duration.Milliseconds()),
		)

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "request completed", attrs...)
	}
}

func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()

				span := trace.SpanFromContext(ctx)
				span.SetStatus(codes.Error, "panic")
				span.RecordError(fmt.Errorf("panic: %v", rec))

				slog.ErrorContext(ctx, "panic recovered",
					slog.String("event", "http.panic"),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal_error",
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
