package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/service"
)

// SystemHandler serves the dashboard status summary.
type SystemHandler struct {
	systemService *service.SystemService
}

func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Status returns uptime and entity counts.
//
// @Summary      System status
// @Tags         system
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.SystemStatus
// @Router       /api/system/status [get]
func (h *SystemHandler) Status(c echo.Context) error {
	status, err := h.systemService.Status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
