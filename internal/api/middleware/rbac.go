package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/api/metrics"
	"github.com/edison/video-portal/internal/core/domain"
)

// forbiddenResponse is the 403 diagnostic body: which roles the route
// wanted and which the caller actually has. No secrets are leaked.
type forbiddenResponse struct {
	Message       string        `json:"message"`
	RequiredRoles []domain.Role `json:"requiredRoles"`
	UserRoles     []domain.Role `json:"userRoles"`
}

// RequireAny passes when at least one required role is satisfied by at
// least one of the principal's roles under the hierarchy.
func RequireAny(required ...domain.Role) echo.MiddlewareFunc {
	return requireRoles(required, func(userRoles []domain.Role) bool {
		for _, r := range required {
			if domain.AnySatisfies(userRoles, r) {
				return true
			}
		}
		return false
	})
}

// RequireAll passes only when every required role is satisfied by some
// principal role under the hierarchy.
func RequireAll(required ...domain.Role) echo.MiddlewareFunc {
	return requireRoles(required, func(userRoles []domain.Role) bool {
		for _, r := range required {
			if !domain.AnySatisfies(userRoles, r) {
				return false
			}
		}
		return true
	})
}

// Convenience checks for the common role gates. Admin satisfies all of
// them through the hierarchy.
func IsAdmin() echo.MiddlewareFunc     { return RequireAny(domain.RoleAdmin) }
func IsModerator() echo.MiddlewareFunc { return RequireAny(domain.RoleModerator) }
func IsEditor() echo.MiddlewareFunc    { return RequireAny(domain.RoleEditor) }
func IsUser() echo.MiddlewareFunc      { return RequireAny(domain.RoleUser) }

func requireRoles(required []domain.Role, allowed func([]domain.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
			}

			if !allowed(principal.Roles) {
				metrics.AuthDeniedTotal.WithLabelValues(c.Path()).Inc()
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Message:       "access denied",
					RequiredRoles: required,
					UserRoles:     principal.Roles,
				})
			}

			return next(c)
		}
	}
}
