package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/edison/video-portal/internal/api/metrics"
	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists audit records on a fixed set of workers, sharded by
// entity id so records for one entity land in arrival order. Delivery is
// fire-and-forget: Enqueue never blocks, and when a worker queue is full
// the record is dropped and counted rather than delaying the response.
type Dispatcher struct {
	workers []chan domain.AuditRecord
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditRecord, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its entity without
// blocking the caller.
func (d *Dispatcher) Enqueue(record domain.AuditRecord) {
	idx := d.shardIndex(record.EntityType + ":" + record.EntityID)
	select {
	case d.workers[idx] <- record:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("entity_type", record.EntityType).
			Str("entity_id", record.EntityID).
			Msg("audit queue full, record dropped")
	}
}

// shardIndex maps an entity key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditRecord) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.service.Record(ctx, &record); err != nil {
				// Already logged by the service; persistence failures never
				// propagate beyond this worker.
				metrics.AuditErrorsTotal.WithLabelValues("persist_failed").Inc()
				continue
			}
			metrics.AuditRecordsTotal.WithLabelValues(record.EntityType, string(record.Operation)).Inc()
		}
	}
}
