package ports

import (
	"context"
	"time"

	"github.com/edison/video-portal/internal/core/domain"
)

// AuditFilter narrows an audit log query. Zero values are ignored.
type AuditFilter struct {
	EntityType string
	ActorID    string
	From       time.Time
	To         time.Time
}

// Page is a 1-based pagination request.
type Page struct {
	Number int
	Limit  int
}

// Normalize clamps the page to sane values.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// AuditRepository is the append-only store for audit records. Records are
// never updated; the only deletion path is the retention purge.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	List(ctx context.Context, filter AuditFilter, page Page) ([]domain.AuditRecord, int64, error)
	Count(ctx context.Context) (int64, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
