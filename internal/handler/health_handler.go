package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstdesk/internal/domain"
	"gstdesk/internal/render"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	renderers *render.Registry
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(renderers *render.Registry) *HealthHandler {
	return &HealthHandler{renderers: renderers}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready once every document
// format has a renderer.
func (h *HealthHandler) Readiness(c *gin.Context) {
	for format := range domain.DocumentContentTypes {
		if _, err := h.renderers.Get(format); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "renderer missing: " + string(format)})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
