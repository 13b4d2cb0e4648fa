package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// AuthResult is returned by register and login: the signed session token
// plus the account it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

// ProfileUpdateInput carries the self-service profile fields. Only name and
// email may be changed this way; roles go through the user service.
type ProfileUpdateInput struct {
	Name  string
	Email string
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
