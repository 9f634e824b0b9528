package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func TestNewLogger_ProdWritesJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Service:       ServiceInfo{Name: "alerts", Version: "test"},
		Environment:   EnvProd,
		Level:         slog.LevelInfo,
		DefaultModule: Module("reconciler"),
		Writer:        &buf,
	})

	ctx := WithRequestID(context.Background(), "req-1")
	logger.InfoContext(ctx, "sweep completed", slog.Int("created", 2))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"msg":        "sweep completed",
		"service":    "alerts",
		"module":     "reconciler",
		"request_id": "req-1",
		"created":    float64(2),
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s = %v, want %v", k, line[k], v)
		}
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Environment: EnvLocal, Level: slog.LevelWarn, Writer: &buf})

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}

	logger.Warn("shown")
	if buf.Len() == 0 {
		t.Error("expected warn to be written")
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	valid := uuid.NewString()
	if got := ValidateAndExtractRequestID(valid); got != valid {
		t.Errorf("expected valid id to be kept, got %q", got)
	}

	for _, in := range []string{"", "not-a-uuid"} {
		got := ValidateAndExtractRequestID(in)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("ValidateAndExtractRequestID(%q) = %q, not a uuid", in, got)
		}
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}
