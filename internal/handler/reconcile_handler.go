package handler

//go:generate mockgen -source=reconcile_handler.go -destination=reconcile_handler_mock.go -package=handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/service/reconcile"
)

// ReconcileTrigger runs a sweep on demand.
type ReconcileTrigger interface {
	TriggerNow(ctx context.Context, trigger reconcile.Trigger, ids ...string) (*reconcile.Report, error)
}

// ReconcileRequest is sent by the registry after equipment is created,
// updated or imported. An empty body requests a full sweep.
type ReconcileRequest struct {
	Event        string   `json:"event" binding:"omitempty,oneof=create update import"`
	EquipmentIDs []string `json:"equipment_ids" binding:"omitempty,dive,required"`
}

type EntityErrorResponse struct {
	EquipmentID string `json:"equipment_id"`
	Stage       string `json:"stage"`
	Error       string `json:"error"`
}

type ReconcileResponse struct {
	RunID      string                `json:"run_id"`
	Trigger    string                `json:"trigger"`
	Today      string                `json:"today"`
	WindowDays int                   `json:"window_days"`
	Seen       int                   `json:"seen"`
	Upcoming   int                   `json:"upcoming"`
	Overdue    int                   `json:"overdue"`
	Created    int                   `json:"created"`
	Skipped    int                   `json:"skipped"`
	Failed     int                   `json:"failed"`
	DurationMs int64                 `json:"duration_ms"`
	Errors     []EntityErrorResponse `json:"errors,omitempty"`
}

type ReconcileHandler struct {
	trigger ReconcileTrigger
}

func NewReconcileHandler(trigger ReconcileTrigger) *ReconcileHandler {
	return &ReconcileHandler{
		trigger: trigger,
	}
}

func (h *ReconcileHandler) HandleReconcile(c *gin.Context) {
	ctx := c.Request.Context()

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "reconcile request validation failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	trigger := reconcile.TriggerManual
	if req.Event != "" {
		trigger = reconcile.TriggerMutation
	}

	slog.InfoContext(ctx, "handling reconcile request",
		slog.String("trigger", trigger.String()),
		slog.String("mutation", req.Event),
		slog.Int("equipment_count", len(req.EquipmentIDs)),
	)

	report, err := h.trigger.TriggerNow(ctx, trigger, req.EquipmentIDs...)
	if err != nil {
		slog.ErrorContext(ctx, "reconcile request failed",
			slog.String("trigger", trigger.String()),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, reconcile.ErrSnapshotRead) {
			respondError(c, http.StatusServiceUnavailable, "snapshot_unavailable", "equipment could not be read")
			return
		}
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to reconcile")
		return
	}

	c.JSON(http.StatusOK, toReconcileResponse(report))
}

func toReconcileResponse(report *reconcile.Report) *ReconcileResponse {
	resp := &ReconcileResponse{
		RunID:      report.RunID,
		Trigger:    report.Trigger.String(),
		Today:      report.Today.ISO(),
		WindowDays: report.WindowDays,
		Seen:       report.Seen,
		Upcoming:   report.Upcoming,
		Overdue:    report.Overdue,
		Created:    report.Created,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
		DurationMs: report.Duration.Milliseconds(),
	}

	for _, e := range report.Errors {
		resp.Errors = append(resp.Errors, EntityErrorResponse{
			EquipmentID: e.EquipmentID,
			Stage:       string(e.Stage),
			Error:       e.Err.Error(),
		})
	}

	return resp
}
