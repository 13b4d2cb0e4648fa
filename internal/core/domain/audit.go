package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Operation classifies a state-mutating request.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// OperationForMethod maps an HTTP verb to an audit operation. The second
// return value is false for verbs that are not audited (GET, HEAD, ...).
func OperationForMethod(method string) (Operation, bool) {
	switch method {
	case "POST":
		return OpCreate, true
	case "PUT", "PATCH":
		return OpUpdate, true
	case "DELETE":
		return OpDelete, true
	default:
		return "", false
	}
}

// AuditRecord is an immutable log entry capturing a state-changing
// operation. Before is nil for creates. Actor, IP and UserAgent are
// nullable: unauthenticated or system-initiated mutations are legitimate.
type AuditRecord struct {
	ID             string         `json:"id"`
	EntityType     string         `json:"entity_type"`
	EntityID       string         `json:"entity_id"`
	Operation      Operation      `json:"operation"`
	Before         map[string]any `json:"before,omitempty"`
	After          map[string]any `json:"after,omitempty"`
	ModifiedFields []string       `json:"modified_fields"`
	ActorID        string         `json:"actor_id,omitempty"`
	IP             string         `json:"ip,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// EntityIDUnknown marks records whose target id could not be resolved.
// Auditing never aborts the underlying request for a missing id.
const EntityIDUnknown = "unknown"

// ChangedFields computes the set of top-level keys that differ between the
// before and after payloads. For creates (before == nil) every key of after
// is changed. Equality is structural over serialized forms, so two values
// match only when their JSON encodings match; a key absent from before
// counts as changed.
func ChangedFields(before, after map[string]any) []string {
	if after == nil {
		return []string{}
	}
	fields := make([]string, 0, len(after))
	for key, afterVal := range after {
		if before == nil {
			fields = append(fields, key)
			continue
		}
		beforeVal, ok := before[key]
		if !ok || !jsonEqual(beforeVal, afterVal) {
			fields = append(fields, key)
		}
	}
	sort.Strings(fields)
	return fields
}

func jsonEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}
