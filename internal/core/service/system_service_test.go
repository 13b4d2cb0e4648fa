package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/edison/video-portal/internal/core/domain"
)

type stubVideoRepo struct {
	videos map[string]*domain.Video
	nextID int
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{videos: make(map[string]*domain.Video)}
}

func (r *stubVideoRepo) Create(_ context.Context, video *domain.Video) (*domain.Video, error) {
	r.nextID++
	clone := *video
	clone.ID = "video-" + strconv.Itoa(r.nextID)
	r.videos[clone.ID] = &clone
	return &clone, nil
}

func (r *stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	if v, ok := r.videos[id]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, domain.ErrVideoNotFound
}

func (r *stubVideoRepo) List(_ context.Context) ([]domain.Video, error) {
	out := make([]domain.Video, 0, len(r.videos))
	for _, v := range r.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVideoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.videos)), nil
}

func (r *stubVideoRepo) Update(_ context.Context, video *domain.Video) (*domain.Video, error) {
	if _, ok := r.videos[video.ID]; !ok {
		return nil, domain.ErrVideoNotFound
	}
	clone := *video
	r.videos[video.ID] = &clone
	return video, nil
}

func (r *stubVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.videos[id]; !ok {
		return domain.ErrVideoNotFound
	}
	delete(r.videos, id)
	return nil
}

func TestSystemService_Status(t *testing.T) {
	users := newStubUserRepo()
	videos := newStubVideoRepo()
	audits := &stubAuditRepo{}
	svc := NewSystemService(users, videos, audits)

	seedUser(t, users, "Root", "root@example.com", domain.RoleAdmin)
	seedUser(t, users, "Alice", "alice@example.com", domain.RoleUser)
	for i := 0; i < 3; i++ {
		if _, err := videos.Create(context.Background(), &domain.Video{Title: "clip"}); err != nil {
			t.Fatalf("seeding video: %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		if err := audits.Insert(context.Background(), &domain.AuditRecord{EntityType: "videos"}); err != nil {
			t.Fatalf("seeding audit record: %v", err)
		}
	}

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Status != "ok" {
		t.Fatalf("expected ok, got %q", status.Status)
	}
	if status.Users != 2 || status.Videos != 3 || status.AuditRecords != 4 {
		t.Fatalf("unexpected counts: %+v", status)
	}
	if status.UptimeSeconds < 0 {
		t.Fatalf("uptime must be non-negative, got %d", status.UptimeSeconds)
	}
}
