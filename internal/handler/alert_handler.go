package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
)

type AlertsResponse struct {
	Alerts []*domain.Alert `json:"alerts"`
	Count  int             `json:"count"`
}

type MarkAllReadResponse struct {
	Modified int `json:"modified"`
}

// AlertHandler exposes the read side of the alert store.
type AlertHandler struct {
	alertRepo domain.AlertRepository
}

func NewAlertHandler(alertRepo domain.AlertRepository) *AlertHandler {
	return &AlertHandler{
		alertRepo: alertRepo,
	}
}

// HandleListUnread lists unread alerts, most recent first.
func (h *AlertHandler) HandleListUnread(c *gin.Context) {
	ctx := c.Request.Context()

	alerts, err := h.alertRepo.ListUnread(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list unread alerts", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to list alerts")
		return
	}

	c.JSON(http.StatusOK, &AlertsResponse{Alerts: alerts, Count: len(alerts)})
}

func (h *AlertHandler) HandleListAll(c *gin.Context) {
	ctx := c.Request.Context()

	alerts, err := h.alertRepo.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list alerts", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to list alerts")
		return
	}

	c.JSON(http.StatusOK, &AlertsResponse{Alerts: alerts, Count: len(alerts)})
}

func (h *AlertHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	alert, err := h.alertRepo.GetByID(ctx, id)
	if err != nil {
		h.respondLookupError(c, id, "failed to get alert", err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) HandleMarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	alert, err := h.alertRepo.MarkRead(ctx, id)
	if err != nil {
		h.respondLookupError(c, id, "failed to mark alert read", err)
		return
	}

	slog.InfoContext(ctx, "alert marked read", slog.String("alert_id", id))

	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) HandleMarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	modified, err := h.alertRepo.MarkAllRead(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark all alerts read", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "store_error", "failed to mark alerts read")
		return
	}

	slog.InfoContext(ctx, "all alerts marked read", slog.Int("modified", modified))

	c.JSON(http.StatusOK, &MarkAllReadResponse{Modified: modified})
}

func (h *AlertHandler) respondLookupError(c *gin.Context, id, msg string, err error) {
	if errors.Is(err, domain.ErrAlertNotFound) {
		respondError(c, http.StatusNotFound, "not_found", "alert not found")
		return
	}

	slog.ErrorContext(c.Request.Context(), msg,
		slog.String("alert_id", id),
		slog.String("error", err.Error()),
	)
	respondError(c, http.StatusInternalServerError, "store_error", msg)
}
