package service

import (
	"context"
	"time"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// SettingsService exposes the category/key/value configuration store.
type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) GetAll(ctx context.Context) (ports.SettingsMap, error) {
	settings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(ports.SettingsMap)
	for _, setting := range settings {
		if _, ok := out[setting.Category]; !ok {
			out[setting.Category] = make(map[string]any)
		}
		out[setting.Category][setting.Key] = setting.Value
	}
	return out, nil
}

func (s *SettingsService) GetCategory(ctx context.Context, category domain.SettingCategory) (map[string]any, error) {
	if !domain.IsValidCategory(category) {
		return nil, domain.ErrInvalidCategory
	}
	settings, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

func (s *SettingsService) UpdateCategory(ctx context.Context, category domain.SettingCategory, values map[string]any) (map[string]any, error) {
	if !domain.IsValidCategory(category) {
		return nil, domain.ErrInvalidCategory
	}
	for key, value := range values {
		setting := domain.Setting{
			Category:  category,
			Key:       key,
			Value:     value,
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.repo.Upsert(ctx, setting); err != nil {
			return nil, err
		}
	}
	return s.GetCategory(ctx, category)
}

func (s *SettingsService) UpdateAll(ctx context.Context, values ports.SettingsMap) (ports.SettingsMap, error) {
	for category, pairs := range values {
		if _, err := s.UpdateCategory(ctx, category, pairs); err != nil {
			return nil, err
		}
	}
	return s.GetAll(ctx)
}

// InitializeDefaults seeds any missing (category, key) pairs with the
// default catalogue. Re-running it leaves populated keys untouched.
func (s *SettingsService) InitializeDefaults(ctx context.Context) (ports.SettingsMap, error) {
	if err := s.repo.SeedDefaults(ctx, domain.DefaultSettings()); err != nil {
		return nil, err
	}
	return s.GetAll(ctx)
}
