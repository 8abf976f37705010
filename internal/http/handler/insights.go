package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"testnetdir.app/pulse/internal/http/dto"
	"testnetdir.app/pulse/internal/insights"
	"testnetdir.app/pulse/internal/model"
)

// InsightsService is what the handler needs from the correlation engine.
type InsightsService interface {
	Compute(ctx context.Context) (*model.InsightSnapshot, error)
	Latest(ctx context.Context) (*model.InsightSnapshot, error)
}

type InsightsHandler struct {
	service InsightsService
}

func NewInsightsHandler(service InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Compute forces a fresh snapshot.
func (h *InsightsHandler) Compute(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.service.Compute(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInsightSnapshotResponse(snapshot))
}

// Latest returns the most recent snapshot, computing one only when the store
// is empty.
func (h *InsightsHandler) Latest(c *gin.Context) {
	ctx := c.Request.Context()

	snapshot, err := h.service.Latest(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInsightSnapshotResponse(snapshot))
}

func (h *InsightsHandler) respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	if errors.Is(err, insights.ErrCatalogUnavailable) {
		slog.ErrorContext(ctx, "catalog unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	slog.ErrorContext(ctx, "insights computation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "insights computation failed"})
}
