package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edison/video-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNoCredential),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, domain.ErrRegistrationDisabled),
		errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusLocked, err.Error()
	case errors.Is(err, domain.ErrInvalidRoleAssignment),
		errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrVideoNotFound):
		return http.StatusNotFound, "video not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "email already registered"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
