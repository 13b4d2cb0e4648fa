package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginGuard counts failed login attempts per account in Redis.
// Key format: login_attempts:<email>
type LoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client}
}

// IsLocked reports whether the account has reached the attempt limit
// within the current lockout window.
func (g *LoginGuard) IsLocked(ctx context.Context, email string, maxAttempts int) (bool, error) {
	n, err := g.client.Get(ctx, g.key(email)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= maxAttempts, nil
}

// RecordFailure increments the failure counter and extends the lockout
// window. The counter expires on its own, so a quiet account unlocks
// without any cleanup job.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string, lockout time.Duration) error {
	key := g.key(email)
	if err := g.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return g.client.Expire(ctx, key, lockout).Err()
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	return g.client.Del(ctx, g.key(email)).Err()
}

func (g *LoginGuard) key(email string) string {
	return "login_attempts:" + email
}
