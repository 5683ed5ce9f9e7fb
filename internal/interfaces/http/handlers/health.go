package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/shared/biztime"
)

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2024-05-01T12:00:00Z"`
	Service   string `json:"service" example:"supportdesk"`
}

type HealthHandler struct {
	service string
	now     func() time.Time
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service, now: biztime.NowUTC}
}

// Health handles GET /health
// @Summary Health check
// @Description Liveness probe; does not touch the database
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().Format(time.RFC3339),
		Service:   h.service,
	})
}
