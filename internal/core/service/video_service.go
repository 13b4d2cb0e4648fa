package service

import (
	"context"
	"time"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// VideoService implements the video catalogue CRUD. Upload plumbing and
// playback are out of scope; this layer is the audited business surface.
type VideoService struct {
	videos ports.VideoRepository
}

func NewVideoService(videos ports.VideoRepository) *VideoService {
	return &VideoService{videos: videos}
}

func (s *VideoService) List(ctx context.Context) ([]domain.Video, error) {
	return s.videos.List(ctx)
}

func (s *VideoService) Get(ctx context.Context, id string) (*domain.Video, error) {
	return s.videos.FindByID(ctx, id)
}

func (s *VideoService) Create(ctx context.Context, ownerID string, input ports.VideoInput) (*domain.Video, error) {
	status := input.Status
	if status == "" {
		status = domain.VideoDraft
	}

	now := time.Now().UTC()
	return s.videos.Create(ctx, &domain.Video{
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		Tags:        input.Tags,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *VideoService) Update(ctx context.Context, id string, input ports.VideoInput) (*domain.Video, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	if input.URL != "" {
		video.URL = input.URL
	}
	if input.Tags != nil {
		video.Tags = input.Tags
	}
	if input.Status != "" {
		video.Status = input.Status
	}
	video.UpdatedAt = time.Now().UTC()

	return s.videos.Update(ctx, video)
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	return s.videos.Delete(ctx, id)
}
