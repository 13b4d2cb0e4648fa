package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// VideoInput is the create/update payload for a video entry.
type VideoInput struct {
	Title       string
	Description string
	URL         string
	Tags        []string
	Status      domain.VideoStatus
}

type VideoService interface {
	List(ctx context.Context) ([]domain.Video, error)
	Get(ctx context.Context, id string) (*domain.Video, error)
	Create(ctx context.Context, ownerID string, input VideoInput) (*domain.Video, error)
	Update(ctx context.Context, id string, input VideoInput) (*domain.Video, error)
	Delete(ctx context.Context, id string) error
}
