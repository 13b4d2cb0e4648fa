package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
)

// AuditSink receives finished audit records for asynchronous persistence.
// The queue dispatcher implements it; Enqueue must never block the caller.
type AuditSink interface {
	Enqueue(record domain.AuditRecord)
}

// Audit attaches a change record to every mutating request that reaches a
// response. POST maps to create, PUT/PATCH to update, DELETE to delete; any
// other verb bypasses auditing entirely.
//
// The before state for update/delete is the incoming request body — a
// best-effort proxy for the prior state, the true persisted state is not
// re-fetched. The after state is whatever the handler wrote, observed by a
// tee on the response writer. The record is enqueued after the response has
// been written, so persistence can never delay or fail the client-visible
// operation.
func Audit(entityType string, sink AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			op, audited := domain.OperationForMethod(c.Request().Method)
			if !audited {
				return next(c)
			}

			var before map[string]any
			if body := readAndRestoreBody(c.Request()); len(body) > 0 && op != domain.OpCreate {
				_ = json.Unmarshal(body, &before)
			}

			recorder := &responseTee{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder

			if err := next(c); err != nil {
				// Failed requests never produced the mutation they describe;
				// let the error handler render them unaudited.
				return err
			}
			if c.Response().Status >= http.StatusBadRequest {
				// Denials rendered mid-chain (403 from a role gate, 4xx
				// written by an inner handler) performed no mutation either.
				return nil
			}

			var after map[string]any
			if recorder.body.Len() > 0 {
				_ = json.Unmarshal(recorder.body.Bytes(), &after)
			}

			record := domain.AuditRecord{
				EntityType:     entityType,
				EntityID:       resolveEntityID(c, after),
				Operation:      op,
				Before:         before,
				After:          after,
				ModifiedFields: domain.ChangedFields(before, after),
				IP:             c.RealIP(),
				UserAgent:      c.Request().UserAgent(),
			}
			if principal, ok := PrincipalFrom(c); ok {
				record.ActorID = principal.UserID
			}

			sink.Enqueue(record)
			return nil
		}
	}
}

// resolveEntityID picks the target id from the route parameter, then the
// response payload, then falls back to the unknown marker. A missing id
// never aborts the request.
func resolveEntityID(c echo.Context, after map[string]any) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	for _, key := range []string{"id", "_id"} {
		if id, ok := after[key].(string); ok && id != "" {
			return id
		}
	}
	return domain.EntityIDUnknown
}

// readAndRestoreBody drains the request body and replaces it so the handler
// can still bind it.
func readAndRestoreBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return body
}

// responseTee duplicates everything written to the response into a buffer
// so the audit record can observe the after state, whichever emission path
// the handler used.
type responseTee struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (t *responseTee) Write(p []byte) (int, error) {
	t.body.Write(p)
	return t.ResponseWriter.Write(p)
}
