package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type Environment string

const (
	EnvLocal Environment = "local"
	EnvDev   Environment = "dev"
	EnvProd  Environment = "prod"
)

// Module names the component a log line originates from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	Service       ServiceInfo
	Environment   Environment
	Level         slog.Level
	DefaultModule Module
	GCPProjectID  string
	Writer        io.Writer
}

// NewLogger builds the process logger. Production emits JSON; other
// environments emit text.
func NewLogger(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var base slog.Handler
	if cfg.Environment == EnvProd {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(&contextHandler{next: base, projectID: cfg.GCPProjectID})

	attrs := []any{
		slog.String("service", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
		slog.String("env", string(cfg.Environment)),
	}
	if cfg.Service.Revision != "" {
		attrs = append(attrs, slog.String("revision", cfg.Service.Revision))
	}
	if cfg.DefaultModule != "" {
		attrs = append(attrs, slog.String("module", string(cfg.DefaultModule)))
	}

	return logger.With(attrs...)
}

// contextHandler decorates records with request and trace identifiers carried
// by the context.
type contextHandler struct {
	next      slog.Handler
	projectID string
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			r.AddAttrs(slog.String("request_id", requestID))
		}
		if attrs := traceAttrs(ctx, h.projectID); len(attrs) > 0 {
			r.AddAttrs(attrs...)
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), projectID: h.projectID}
}
