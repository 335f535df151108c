// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/doctoppt/client/internal/models"
	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version            string
	deepseekConfigured bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, deepseekConfigured bool) HealthHandler {
	return &HealthHandlerImpl{
		version:            version,
		deepseekConfigured: deepseekConfigured,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthReport{
		Status:             "healthy",
		Version:            h.version,
		DeepseekConfigured: h.deepseekConfigured,
	})
}
