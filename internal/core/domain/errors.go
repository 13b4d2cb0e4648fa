package domain

import "errors"

var (
	// ErrNoCredential is returned when a request carries no bearer token.
	ErrNoCredential = errors.New("no credential provided")
	// ErrInvalidToken covers malformed, unsigned and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInsufficientRole is returned when an authenticated principal lacks
	// the roles a route requires.
	ErrInsufficientRole = errors.New("insufficient role")
	// ErrInvalidRoleAssignment covers unknown role strings and attempts to
	// strip the admin role from the last remaining administrator.
	ErrInvalidRoleAssignment = errors.New("invalid role assignment")

	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrAccountLocked        = errors.New("account temporarily locked")
	// ErrEmailNotVerified is returned by login when the
	// requireEmailVerification setting is on and the account has not
	// verified its address yet.
	ErrEmailNotVerified = errors.New("email address not verified")

	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("email already registered")
	ErrVideoNotFound = errors.New("video not found")

	ErrInvalidCategory = errors.New("unknown settings category")
)
