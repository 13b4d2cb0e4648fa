package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

// AuditService persists and queries audit records. Persistence runs off the
// request path (via the queue dispatcher), so a failed insert is logged
// here and never surfaces to the client that triggered the mutation.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

func (s *AuditService) Record(ctx context.Context, record *domain.AuditRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.EntityID == "" {
		record.EntityID = domain.EntityIDUnknown
	}
	if record.ModifiedFields == nil {
		record.ModifiedFields = []string{}
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		s.log.Error().Err(err).
			Str("entity_type", record.EntityType).
			Str("entity_id", record.EntityID).
			Str("operation", string(record.Operation)).
			Msg("audit record persistence failed")
		return err
	}
	return nil
}

func (s *AuditService) List(ctx context.Context, filter ports.AuditFilter, page ports.Page) (*ports.AuditPage, error) {
	page = page.Normalize()
	records, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / page.Limit
	if int(total)%page.Limit != 0 {
		totalPages++
	}

	return &ports.AuditPage{
		Records:    records,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *AuditService) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	removed, err := s.repo.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("audit logs purged")
	return removed, nil
}
