package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/ports"
)

// AuditHandler exposes the admin-only audit trail API.
type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

type purgeResponse struct {
	Message string `json:"message"`
	Removed int64  `json:"removed"`
}

// List returns a page of audit records, newest first, optionally filtered
// by entity type, actor, and creation date range.
//
// @Summary      List audit records
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        type   query     string  false  "Entity type filter"
// @Param        actor  query     string  false  "Actor id filter"
// @Param        from   query     string  false  "RFC 3339 lower bound"
// @Param        to     query     string  false  "RFC 3339 upper bound"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  ports.AuditPage
// @Failure      400    {object}  errorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	filter := ports.AuditFilter{
		EntityType: c.QueryParam("type"),
		ActorID:    c.QueryParam("actor"),
	}

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		filter.From = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		filter.To = t
	}

	page := ports.Page{
		Number: queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	result, err := h.auditService.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Purge deletes audit records created before the cutoff.
//
// @Summary      Purge audit records
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        before  query     string  true  "RFC 3339 cutoff; records older than this are removed"
// @Success      200     {object}  purgeResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/audit [delete]
func (h *AuditHandler) Purge(c echo.Context) error {
	raw := c.QueryParam("before")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "before date is required")
	}
	cutoff, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid before date")
	}

	removed, err := h.auditService.PurgeBefore(c.Request().Context(), cutoff)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purgeResponse{Message: "audit logs cleared", Removed: removed})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
