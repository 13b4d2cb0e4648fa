package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// UserService implements admin-facing account management.
type UserService struct {
	users      ports.UserRepository
	bcryptCost int
}

func NewUserService(users ports.UserRepository, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	roles := input.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	if !domain.ValidRoles(roles) {
		return nil, domain.ErrInvalidRoleAssignment
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// UpdateRoles replaces a user's role set. Stripping the admin role from the
// last remaining administrator is rejected to prevent total lockout.
func (s *UserService) UpdateRoles(ctx context.Context, id string, roles []domain.Role) (*domain.User, error) {
	if len(roles) == 0 || !domain.ValidRoles(roles) {
		return nil, domain.ErrInvalidRoleAssignment
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if domain.HasRole(user.Roles, domain.RoleAdmin) && !domain.HasRole(roles, domain.RoleAdmin) {
		admins, err := s.users.CountWithRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, domain.ErrInvalidRoleAssignment
		}
	}

	user.Roles = roles
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}
