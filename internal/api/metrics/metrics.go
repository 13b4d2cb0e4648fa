// Package metrics defines and registers all custom Prometheus metrics for
// the video portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Access control metrics ────────────────────────────────────────────────────

// AuthDeniedTotal counts authorization failures (403), by route.
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected for insufficient role.",
	},
	[]string{"route"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "locked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditRecordsTotal counts audit records persisted successfully.
// Labels:
//   - entity_type: the audited collection (e.g. "users", "videos")
//   - operation: create, update, or delete
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records successfully persisted.",
	},
	[]string{"entity_type", "operation"},
)

// AuditErrorsTotal counts audit records that failed to persist. Failures
// are swallowed on the request path, so this counter is the main signal
// that the audit trail is losing records.
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit records that failed to persist.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks the number of records waiting in each dispatcher
// worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts records dropped because a worker channel was
// full. Fire-and-forget delivery drops rather than blocking the response.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit records dropped due to a full worker queue.",
	},
)
