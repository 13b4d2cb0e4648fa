package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/api/metrics"
	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new portal account with the base user role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Login authenticates by email and password and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      423   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountLocked):
			metrics.LoginsTotal.WithLabelValues("locked").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Profile returns the authenticated user's account.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's name and email.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), principal.UserID, ports.ProfileUpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword rotates the caller's password after verifying the current one.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated successfully"})
}
