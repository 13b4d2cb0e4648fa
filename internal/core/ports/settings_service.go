package ports

import (
	"context"

	"github.com/edison/video-portal/internal/core/domain"
)

// SettingsMap groups setting values by category then key.
type SettingsMap map[domain.SettingCategory]map[string]any

type SettingsService interface {
	GetAll(ctx context.Context) (SettingsMap, error)
	GetCategory(ctx context.Context, category domain.SettingCategory) (map[string]any, error)
	UpdateCategory(ctx context.Context, category domain.SettingCategory, values map[string]any) (map[string]any, error)
	UpdateAll(ctx context.Context, values SettingsMap) (SettingsMap, error)
	// InitializeDefaults fills in missing (category, key) pairs with the
	// default catalogue. Idempotent: populated keys are never overwritten.
	InitializeDefaults(ctx context.Context) (SettingsMap, error)
}
