package stub

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *EquipmentStorage
}

func NewHandler(storage *EquipmentStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totalCount := 0
	for _, sb := range req.Batches {
		startDay, err := time.Parse(dayLayout, sb.StartDay)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_day: " + sb.StartDay})
			return
		}
		endDay, err := time.Parse(dayLayout, sb.EndDay)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_day: " + sb.EndDay})
			return
		}
		if endDay.Before(startDay) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_day before start_day"})
			return
		}

		h.storage.AddBatch(runID, &Batch{
			StartDay: startDay,
			EndDay:   endDay,
			Count:    sb.Count,
			Layout:   sb.Layout,
			Brand:    defaultString(sb.Brand, "Acme"),
			Model:    defaultString(sb.Model, "X1"),
			Area:     sb.Area,
		})

		totalCount += sb.Count
	}

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("batch_count", len(req.Batches)),
		slog.Int("total_equipment_count", totalCount),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":      "seeded",
		"run_id":      runID,
		"batch_count": len(req.Batches),
		"total_count": totalCount,
	})
}

// GET /api/v1/equipment?has_due_date=true&run_id=...
// GET /api/v1/equipment?ids=a,b&run_id=...
func (h *Handler) HandleListEquipment(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var ids map[string]bool
	if raw := c.Query("ids"); raw != "" {
		ids = make(map[string]bool)
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids[id] = true
			}
		}
	}

	equipment := h.storage.List(runID, ids)

	slog.Debug("list equipment",
		slog.String("run_id", runID),
		slog.Int("filter_ids", len(ids)),
		slog.Int("count", len(equipment)),
	)

	c.JSON(http.StatusOK, &EquipmentListResponse{
		Equipment: equipment,
		Count:     len(equipment),
	})
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
