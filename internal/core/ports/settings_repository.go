package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// SettingsRepository persists (category, key, value) configuration entries.
type SettingsRepository interface {
	GetAll(ctx context.Context) ([]domain.Setting, error)
	GetByCategory(ctx context.Context, category domain.SettingCategory) ([]domain.Setting, error)
	Upsert(ctx context.Context, setting domain.Setting) error
	// SeedDefaults inserts any missing defaults without touching existing
	// values for already-populated (category, key) pairs.
	SeedDefaults(ctx context.Context, defaults []domain.Setting) error
}
