package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// UserHandler exposes admin-only account management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Count returns the total number of accounts.
//
// @Summary      Count users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Router       /api/users/count [get]
func (h *UserHandler) Count(c echo.Context) error {
	count, err := h.userService.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// Get returns a single account by id.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds an account with an explicit role set.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    toRoles(req.Roles),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update changes an account's name or email.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes an account.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

// UpdateRoles replaces a user's role set. Removing admin from the last
// administrator is rejected.
//
// @Summary      Update user roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User id"
// @Param        body  body      updateRolesRequest  true  "New role set"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id}/roles [put]
func (h *UserHandler) UpdateRoles(c echo.Context) error {
	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRoles(c.Request().Context(), c.Param("id"), toRoles(req.Roles))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func toRoles(values []string) []domain.Role {
	roles := make([]domain.Role, len(values))
	for i, v := range values {
		roles[i] = domain.Role(v)
	}
	return roles
}
