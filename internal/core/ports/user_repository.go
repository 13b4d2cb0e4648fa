package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// UserRepository defines the persistence interface for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	// CountWithRole counts users whose role set contains the given role
	// exactly (no hierarchy expansion).
	CountWithRole(ctx context.Context, role domain.Role) (int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
