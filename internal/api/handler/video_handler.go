package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// VideoHandler exposes the video catalogue CRUD.
type VideoHandler struct {
	videoService ports.VideoService
}

func NewVideoHandler(videoService ports.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type videoRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	URL         string   `json:"url" validate:"required,url"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type updateVideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// List returns the video catalogue.
//
// @Summary      List videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Video
// @Router       /api/videos [get]
func (h *VideoHandler) List(c echo.Context) error {
	videos, err := h.videoService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// Get returns a single video.
//
// @Summary      Get video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  domain.Video
// @Failure      404  {object}  errorResponse
// @Router       /api/videos/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	video, err := h.videoService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, video)
}

// Create adds a catalogue entry owned by the caller.
//
// @Summary      Create video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      videoRequest  true  "Video details"
// @Success      201   {object}  domain.Video
// @Failure      400   {object}  errorResponse
// @Router       /api/videos [post]
func (h *VideoHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req videoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videoService.Create(c.Request().Context(), principal.UserID, ports.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Tags:        req.Tags,
		Status:      domain.VideoStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, video)
}

// Update changes a catalogue entry.
//
// @Summary      Update video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Video id"
// @Param        body  body      updateVideoRequest  true  "Fields to update"
// @Success      200   {object}  domain.Video
// @Failure      404   {object}  errorResponse
// @Router       /api/videos/{id} [put]
func (h *VideoHandler) Update(c echo.Context) error {
	var req updateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videoService.Update(c.Request().Context(), c.Param("id"), ports.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Tags:        req.Tags,
		Status:      domain.VideoStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, video)
}

// Delete removes a catalogue entry.
//
// @Summary      Delete video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /api/videos/{id} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	if err := h.videoService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "video deleted"})
}
