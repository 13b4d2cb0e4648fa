package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// CreateUserInput is the admin-facing account creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []domain.Role
}

// UpdateUserInput carries the mutable account fields for admin updates.
// Nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// UpdateRoles replaces the user's role set. It fails with
	// domain.ErrInvalidRoleAssignment on unknown roles, an empty set, or an
	// attempt to strip admin from the last remaining administrator.
	UpdateRoles(ctx context.Context, id string, roles []domain.Role) (*domain.User, error)
}
