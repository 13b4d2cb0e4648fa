package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

type recordingAuditService struct {
	mu      sync.Mutex
	records []domain.AuditRecord
	done    chan struct{}
}

func (s *recordingAuditService) Record(_ context.Context, record *domain.AuditRecord) error {
	s.mu.Lock()
	s.records = append(s.records, *record)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func (s *recordingAuditService) List(context.Context, ports.AuditFilter, ports.Page) (*ports.AuditPage, error) {
	return &ports.AuditPage{}, nil
}

func (s *recordingAuditService) PurgeBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func waitFor(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for record %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversRecords(t *testing.T) {
	svc := &recordingAuditService{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditRecord{EntityType: "videos", EntityID: "v1", Operation: domain.OpCreate})
	d.Enqueue(domain.AuditRecord{EntityType: "users", EntityID: "u1", Operation: domain.OpDelete})
	waitFor(t, svc.done, 2)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.records) != 2 {
		t.Fatalf("expected 2 persisted records, got %d", len(svc.records))
	}
}

func TestDispatcher_OrderPerEntity(t *testing.T) {
	svc := &recordingAuditService{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	ops := []domain.Operation{domain.OpCreate, domain.OpUpdate, domain.OpUpdate, domain.OpDelete}
	for _, op := range ops {
		d.Enqueue(domain.AuditRecord{EntityType: "videos", EntityID: "v1", Operation: op})
	}
	waitFor(t, svc.done, len(ops))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, record := range svc.records {
		if record.Operation != ops[i] {
			t.Fatalf("records for one entity must arrive in order: got %v", svc.records)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingAuditService{}, zerolog.Nop())

	first := d.shardIndex("videos:v1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("videos:v1"); got != first {
			t.Fatalf("shard index must be deterministic, got %d then %d", first, got)
		}
	}
	if first < 0 || first >= len(d.workers) {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(1, svc, zerolog.Nop())
	// Not started: the queue fills and further records are dropped without
	// blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.AuditRecord{EntityType: "videos", EntityID: "v1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected a full queue of %d, got %d", channelBuffer, got)
	}
}
