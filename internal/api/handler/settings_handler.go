package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// SettingsHandler exposes the admin-only configuration API.
type SettingsHandler struct {
	settingsService ports.SettingsService
}

func NewSettingsHandler(settingsService ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetAll returns every setting grouped by category.
//
// @Summary      Get all settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SettingsMap
// @Router       /api/settings [get]
func (h *SettingsHandler) GetAll(c echo.Context) error {
	settings, err := h.settingsService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// GetCategory returns the key/value pairs of one category.
//
// @Summary      Get settings by category
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Param        category  path      string  true  "Category"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  errorResponse
// @Router       /api/settings/{category} [get]
func (h *SettingsHandler) GetCategory(c echo.Context) error {
	category := domain.SettingCategory(c.Param("category"))
	values, err := h.settingsService.GetCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// UpdateAll upserts settings across categories.
//
// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.SettingsMap  true  "Settings grouped by category"
// @Success      200   {object}  ports.SettingsMap
// @Failure      400   {object}  errorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) UpdateAll(c echo.Context) error {
	var req ports.SettingsMap
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	settings, err := h.settingsService.UpdateAll(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateCategory upserts the key/value pairs of one category.
//
// @Summary      Update settings category
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        category  path      string          true  "Category"
// @Param        body      body      map[string]any  true  "Key/value pairs"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  errorResponse
// @Router       /api/settings/{category} [put]
func (h *SettingsHandler) UpdateCategory(c echo.Context) error {
	var req map[string]any
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category := domain.SettingCategory(c.Param("category"))
	values, err := h.settingsService.UpdateCategory(c.Request().Context(), category, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// Initialize seeds missing settings with defaults. Idempotent.
//
// @Summary      Initialize default settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SettingsMap
// @Router       /api/settings/initialize [post]
func (h *SettingsHandler) Initialize(c echo.Context) error {
	settings, err := h.settingsService.InitializeDefaults(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
