package ports

import (
	"context"
	"time"

	"github.com/edison/video-portal/internal/core/domain"
)

// AuditPage is a page of audit records plus pagination metadata.
type AuditPage struct {
	Records    []domain.AuditRecord `json:"logs"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

type AuditService interface {
	// Record persists a single audit record. Callers on the request path
	// must treat failures as non-fatal; the service logs and reports the
	// error but the primary operation has already succeeded.
	Record(ctx context.Context, record *domain.AuditRecord) error
	List(ctx context.Context, filter AuditFilter, page Page) (*AuditPage, error)
	// PurgeBefore deletes records created before the cutoff and returns
	// the number removed.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
