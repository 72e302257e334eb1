package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scholarpath/intake-api/internal/service"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service and store health.
type HealthHandler struct {
	db           pinger
	applications *service.ApplicationService
	admins       *service.AdminService
	logger       *zap.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db pinger, applications *service.ApplicationService, admins *service.AdminService, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{db: db, applications: applications, admins: admins, logger: logger}
}

// Health godoc
// @Summary Health check
// @Description Report database connectivity and record counts
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("health check db ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}

	payload := gin.H{
		"status":   "ok",
		"database": "connected",
	}

	if count, err := h.applications.Count(ctx); err == nil {
		payload["applications"] = count
	}
	if count, err := h.admins.Count(ctx); err == nil {
		payload["admins"] = count
	}

	c.JSON(http.StatusOK, payload)
}

// Ready responds with a static OK payload for readiness probes.
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
