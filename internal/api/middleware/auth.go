package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

const principalKey = "principal"

// Auth validates the bearer token and injects the resolved principal into
// the request context. Requests without a credential get 401 before any
// handler logic runs.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no credential provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// A principal never carries an empty role set: tokens minted
			// before a role model change fall back to the base role.
			if len(principal.Roles) == 0 {
				principal.Roles = []domain.Role{domain.RoleUser}
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom extracts the principal set by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	principal, ok := c.Get(principalKey).(domain.Principal)
	return principal, ok
}
