package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, name, email string, roles ...domain.Role) *domain.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Roles:        roles,
	})
	if err != nil {
		t.Fatalf("seeding %s failed: %v", email, err)
	}
	return created
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pass12345",
		Roles:    []domain.Role{domain.RoleEditor},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !domain.HasRole(user.Roles, domain.RoleEditor) {
		t.Fatalf("expected editor role, got %v", user.Roles)
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("expected password to be hashed")
	}
}

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "pass12345",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected [user], got %v", user.Roles)
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "pass12345",
		Roles:    []domain.Role{"superadmin"},
	})
	if err != domain.ErrInvalidRoleAssignment {
		t.Fatalf("expected ErrInvalidRoleAssignment, got %v", err)
	}
}

func TestUserService_UpdateRoles_LastAdminGuard(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	admin := seedUser(t, repo, "Root", "root@example.com", domain.RoleAdmin)

	_, err := svc.UpdateRoles(context.Background(), admin.ID, []domain.Role{domain.RoleUser})
	if err != domain.ErrInvalidRoleAssignment {
		t.Fatalf("demoting the only admin must fail, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), admin.ID)
	if !domain.HasRole(stored.Roles, domain.RoleAdmin) {
		t.Fatalf("admin role was stripped despite the guard")
	}
}

func TestUserService_UpdateRoles_SecondAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	first := seedUser(t, repo, "Root", "root@example.com", domain.RoleAdmin)
	seedUser(t, repo, "Backup", "backup@example.com", domain.RoleAdmin)

	updated, err := svc.UpdateRoles(context.Background(), first.ID, []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("demotion with a second admin should succeed, got %v", err)
	}
	if domain.HasRole(updated.Roles, domain.RoleAdmin) {
		t.Fatalf("expected admin role removed, got %v", updated.Roles)
	}
}

func TestUserService_UpdateRoles_KeepingAdminSkipsGuard(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	admin := seedUser(t, repo, "Root", "root@example.com", domain.RoleAdmin)

	updated, err := svc.UpdateRoles(context.Background(), admin.ID, []domain.Role{domain.RoleAdmin, domain.RoleModerator})
	if err != nil {
		t.Fatalf("adding roles to the sole admin should succeed, got %v", err)
	}
	if !domain.HasRole(updated.Roles, domain.RoleModerator) {
		t.Fatalf("expected moderator role added, got %v", updated.Roles)
	}
}

func TestUserService_UpdateRoles_Invalid(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	user := seedUser(t, repo, "Carol", "carol@example.com", domain.RoleUser)

	if _, err := svc.UpdateRoles(context.Background(), user.ID, nil); err != domain.ErrInvalidRoleAssignment {
		t.Fatalf("empty role set must be rejected, got %v", err)
	}
	if _, err := svc.UpdateRoles(context.Background(), user.ID, []domain.Role{"owner"}); err != domain.ErrInvalidRoleAssignment {
		t.Fatalf("unknown role must be rejected, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)
	user := seedUser(t, repo, "Dave", "dave@example.com", domain.RoleUser)

	name := "David"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "David" {
		t.Fatalf("expected renamed user, got %q", updated.Name)
	}
	if updated.Email != "dave@example.com" {
		t.Fatalf("email should be untouched, got %q", updated.Email)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)
	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
