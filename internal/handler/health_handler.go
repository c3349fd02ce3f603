package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// HealthHandler exposes liveness, readiness and metrics endpoints.
type HealthHandler struct {
	db      *sqlx.DB
	metrics *service.MetricsService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, metrics *service.MetricsService) *HealthHandler {
	return &HealthHandler{db: db, metrics: metrics}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe, checks the database connection
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Snapshot godoc
// @Summary JSON snapshot of internal counters
// @Tags health
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope{data=service.MetricsSnapshot}
// @Router /metrics/snapshot [get]
func (h *HealthHandler) Snapshot(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
