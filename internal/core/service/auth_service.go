package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// AuthService implements registration, login, and self-service profile
// management. Registration availability and the lockout policy come from
// the settings store, not from static configuration.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenService
	settings   ports.SettingsService
	loginGuard ports.LoginGuard
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, settings ports.SettingsService, guard ports.LoginGuard, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		settings:   settings,
		loginGuard: guard,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.registrationAllowed(ctx) {
		return nil, domain.ErrRegistrationDisabled
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(principalOf(created))
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	maxAttempts, lockout := s.lockoutPolicy(ctx)
	if s.loginGuard != nil && maxAttempts > 0 {
		locked, err := s.loginGuard.IsLocked(ctx, email, maxAttempts)
		if err != nil {
			s.log.Warn().Err(err).Msg("login guard unavailable, continuing")
		} else if locked {
			return nil, domain.ErrAccountLocked
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown account and bad password.
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.loginGuard != nil {
			if err := s.loginGuard.RecordFailure(ctx, email, lockout); err != nil {
				s.log.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.emailVerificationRequired(ctx) && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	if s.loginGuard != nil {
		if err := s.loginGuard.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login attempts")
		}
	}

	// Best effort: a login that cannot be timestamped still succeeds.
	now := time.Now().UTC()
	user.LastLogin = &now
	if _, err := s.users.Update(ctx, user); err != nil {
		s.log.Warn().Err(err).Msg("failed to record last login")
	}

	token, err := s.tokens.Issue(principalOf(user))
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ports.ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	_, err = s.users.Update(ctx, user)
	return err
}

// registrationAllowed consults the authentication settings; a missing or
// unreadable toggle defaults to allowing registration.
func (s *AuthService) registrationAllowed(ctx context.Context) bool {
	if s.settings == nil {
		return true
	}
	values, err := s.settings.GetCategory(ctx, domain.CategoryAuthentication)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read authentication settings")
		return true
	}
	if allowed, ok := values[domain.SettingAllowRegistration].(bool); ok {
		return allowed
	}
	return true
}

// emailVerificationRequired consults the authentication settings; a missing
// or unreadable toggle defaults to not requiring verification.
func (s *AuthService) emailVerificationRequired(ctx context.Context) bool {
	if s.settings == nil {
		return false
	}
	values, err := s.settings.GetCategory(ctx, domain.CategoryAuthentication)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read authentication settings")
		return false
	}
	required, _ := values[domain.SettingRequireEmailVerification].(bool)
	return required
}

// lockoutPolicy reads maxLoginAttempts and lockoutDuration (minutes) from
// the security settings, falling back to the catalogue defaults.
func (s *AuthService) lockoutPolicy(ctx context.Context) (int, time.Duration) {
	maxAttempts, lockoutMinutes := 5, 30
	if s.settings == nil {
		return maxAttempts, time.Duration(lockoutMinutes) * time.Minute
	}
	values, err := s.settings.GetCategory(ctx, domain.CategorySecurity)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read security settings")
		return maxAttempts, time.Duration(lockoutMinutes) * time.Minute
	}
	maxAttempts = intSetting(values[domain.SettingMaxLoginAttempts], maxAttempts)
	lockoutMinutes = intSetting(values[domain.SettingLockoutDuration], lockoutMinutes)
	return maxAttempts, time.Duration(lockoutMinutes) * time.Minute
}

// intSetting coerces a polymorphic setting value into an int. BSON decoding
// yields int32/int64, JSON decoding yields float64.
func intSetting(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Roles:  u.Roles,
	}
}
