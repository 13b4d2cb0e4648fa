package ports

import (
	"context"
	"time"
)

// LoginGuard tracks failed login attempts per account. The Redis
// implementation backs it; a failing guard must never block logins, so
// callers treat guard errors as advisory.
type LoginGuard interface {
	IsLocked(ctx context.Context, email string, maxAttempts int) (bool, error)
	RecordFailure(ctx context.Context, email string, lockout time.Duration) error
	Reset(ctx context.Context, email string) error
}
