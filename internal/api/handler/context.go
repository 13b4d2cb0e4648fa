package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/api/middleware"
	"github.com/edison/video-portal/internal/core/domain"
)

// currentPrincipal extracts the principal injected by the Auth middleware.
// Its presence proves the middleware ran; handlers behind Auth treat a
// missing principal as a misconfigured route and fail closed with 401.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
