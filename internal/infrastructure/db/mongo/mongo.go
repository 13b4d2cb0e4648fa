// Package mongo implements the portal's repositories over MongoDB: account,
// video, settings, and audit collections, each with per-call timeouts and an
// EnsureIndexes bootstrap.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the portal database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %q: %w", cfg.Database, err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping %q: %w", cfg.Database, err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes every portal collection relies on:
// the unique email on users, the unique (category, key) on settings, and
// the audit and video query indexes. Run once at startup before the server
// accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := NewVideoRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("videos indexes: %w", err)
	}
	if err := NewSettingsRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("settings indexes: %w", err)
	}
	if err := NewAuditRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}
