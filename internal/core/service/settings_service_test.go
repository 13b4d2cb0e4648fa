package service

import (
	"context"
	"testing"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

type settingKey struct {
	category domain.SettingCategory
	key      string
}

// stubSettingsRepo mirrors the upsert/seed contract of the mongo
// implementation: Upsert overwrites, SeedDefaults only fills gaps.
type stubSettingsRepo struct {
	settings map[settingKey]domain.Setting
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{settings: make(map[settingKey]domain.Setting)}
}

func (r *stubSettingsRepo) GetAll(context.Context) ([]domain.Setting, error) {
	out := make([]domain.Setting, 0, len(r.settings))
	for _, s := range r.settings {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSettingsRepo) GetByCategory(_ context.Context, category domain.SettingCategory) ([]domain.Setting, error) {
	var out []domain.Setting
	for _, s := range r.settings {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, setting domain.Setting) error {
	r.settings[settingKey{setting.Category, setting.Key}] = setting
	return nil
}

func (r *stubSettingsRepo) SeedDefaults(_ context.Context, defaults []domain.Setting) error {
	for _, s := range defaults {
		k := settingKey{s.Category, s.Key}
		if _, ok := r.settings[k]; !ok {
			r.settings[k] = s
		}
	}
	return nil
}

func TestSettingsService_InitializeDefaults(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewSettingsService(repo)

	all, err := svc.InitializeDefaults(context.Background())
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	auth, ok := all[domain.CategoryAuthentication]
	if !ok {
		t.Fatalf("expected authentication category in %v", all)
	}
	if allowed, _ := auth[domain.SettingAllowRegistration].(bool); !allowed {
		t.Fatalf("expected allowRegistration default true, got %v", auth[domain.SettingAllowRegistration])
	}
	if len(all) != 4 {
		t.Fatalf("expected all four categories seeded, got %d", len(all))
	}
}

func TestSettingsService_InitializeDefaults_KeepsExisting(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewSettingsService(repo)

	if _, err := svc.UpdateCategory(context.Background(), domain.CategoryAuthentication, map[string]any{
		domain.SettingAllowRegistration: false,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	all, err := svc.InitializeDefaults(context.Background())
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if allowed, _ := all[domain.CategoryAuthentication][domain.SettingAllowRegistration].(bool); allowed {
		t.Fatalf("seeding must not overwrite an existing value")
	}
}

func TestSettingsService_UpdateCategory_Invalid(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo())

	if _, err := svc.UpdateCategory(context.Background(), "billing", map[string]any{"plan": "pro"}); err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := svc.GetCategory(context.Background(), "billing"); err != domain.ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestSettingsService_UpdateAll(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo())

	all, err := svc.UpdateAll(context.Background(), ports.SettingsMap{
		domain.CategoryGeneral:  {"siteName": "Clips"},
		domain.CategorySecurity: {domain.SettingMaxLoginAttempts: 3},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if all[domain.CategoryGeneral]["siteName"] != "Clips" {
		t.Fatalf("expected siteName persisted, got %v", all[domain.CategoryGeneral])
	}
	if all[domain.CategorySecurity][domain.SettingMaxLoginAttempts] != 3 {
		t.Fatalf("expected maxLoginAttempts persisted, got %v", all[domain.CategorySecurity])
	}
}
