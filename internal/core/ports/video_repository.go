package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// VideoRepository persists video catalogue entries.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context) ([]domain.Video, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, video *domain.Video) (*domain.Video, error)
	Delete(ctx context.Context, id string) error
}
