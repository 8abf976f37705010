package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"testnetdir.app/pulse/internal/discovery"
	"testnetdir.app/pulse/internal/http/dto"
	"testnetdir.app/pulse/internal/model"
)

const (
	defaultDiscoveryLimit = 20
	maxDiscoveryLimit     = 100
)

// DiscoveryService is what the handler needs from the pipeline.
type DiscoveryService interface {
	Run(ctx context.Context) (*discovery.RunResult, error)
	Latest(ctx context.Context, limit int32) ([]model.DiscoveryRecord, error)
}

type DiscoveryHandler struct {
	service DiscoveryService
}

func NewDiscoveryHandler(service DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// Run triggers one discovery pass. Partial success (degraded providers,
// skipped candidates) is still a 200; only a run that could not start at all
// is an error.
func (h *DiscoveryHandler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.Run(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "discovery run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "discovery run failed"})
		return
	}

	c.JSON(http.StatusOK, dto.RunDiscoveryResponse{
		Added: result.Added,
		Items: dto.ToDiscoveryItems(result.Items),
	})
}

func (h *DiscoveryHandler) Latest(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultDiscoveryLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxDiscoveryLimit {
		limit = maxDiscoveryLimit
	}

	records, err := h.service.Latest(ctx, int32(limit))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list discoveries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discoveries"})
		return
	}

	c.JSON(http.StatusOK, dto.LatestDiscoveriesResponse{
		Items: dto.ToDiscoveryItems(records),
	})
}
