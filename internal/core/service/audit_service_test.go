package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

type stubAuditRepo struct {
	records   []domain.AuditRecord
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, record *domain.AuditRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, filter ports.AuditFilter, page ports.Page) ([]domain.AuditRecord, int64, error) {
	var matched []domain.AuditRecord
	for _, record := range r.records {
		if filter.EntityType != "" && record.EntityType != filter.EntityType {
			continue
		}
		if filter.ActorID != "" && record.ActorID != filter.ActorID {
			continue
		}
		matched = append(matched, record)
	}
	total := int64(len(matched))
	start := (page.Number - 1) * page.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubAuditRepo) Count(context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *stubAuditRepo) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []domain.AuditRecord
	var removed int64
	for _, record := range r.records {
		if record.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	r.records = kept
	return removed, nil
}

func TestAuditService_Record_FillsDefaults(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	record := &domain.AuditRecord{
		EntityType: "videos",
		Operation:  domain.OpCreate,
	}
	if err := svc.Record(context.Background(), record); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	stored := repo.records[0]
	if stored.EntityID != domain.EntityIDUnknown {
		t.Fatalf("expected unknown entity id, got %q", stored.EntityID)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	if stored.ModifiedFields == nil {
		t.Fatalf("expected empty modified fields slice, got nil")
	}
}

func TestAuditService_Record_PropagatesInsertError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("mongo down")}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), &domain.AuditRecord{EntityType: "users"})
	if err == nil {
		t.Fatalf("expected insert error to surface to the worker")
	}
}

func TestAuditService_List_Pagination(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	for i := 0; i < 25; i++ {
		_ = svc.Record(context.Background(), &domain.AuditRecord{
			EntityType: "videos",
			EntityID:   "v1",
			Operation:  domain.OpUpdate,
		})
	}

	page, err := svc.List(context.Background(), ports.AuditFilter{}, ports.Page{Number: 2, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if len(page.Records) != 10 {
		t.Fatalf("expected 10 records on page 2, got %d", len(page.Records))
	}
	if page.Page != 2 || page.Limit != 10 {
		t.Fatalf("pagination metadata wrong: %+v", page)
	}
}

func TestAuditService_List_NormalizesPage(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, zerolog.Nop())

	page, err := svc.List(context.Background(), ports.AuditFilter{}, ports.Page{Number: 0, Limit: -5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("expected normalized page 1/10, got %d/%d", page.Page, page.Limit)
	}
}

func TestAuditService_List_Filter(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	_ = svc.Record(context.Background(), &domain.AuditRecord{EntityType: "videos", ActorID: "u1"})
	_ = svc.Record(context.Background(), &domain.AuditRecord{EntityType: "users", ActorID: "u2"})

	page, err := svc.List(context.Background(), ports.AuditFilter{EntityType: "videos"}, ports.Page{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 1 || page.Records[0].EntityType != "videos" {
		t.Fatalf("filter did not apply: %+v", page)
	}
}

func TestAuditService_PurgeBefore(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	old := time.Now().UTC().Add(-48 * time.Hour)
	_ = svc.Record(context.Background(), &domain.AuditRecord{EntityType: "videos", CreatedAt: old})
	_ = svc.Record(context.Background(), &domain.AuditRecord{EntityType: "videos"})

	removed, err := svc.PurgeBefore(context.Background(), time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 remaining record, got %d", len(repo.records))
	}
}
