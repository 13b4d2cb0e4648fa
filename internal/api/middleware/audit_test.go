package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edison/video-portal/internal/core/domain"
)

type captureSink struct {
	records []domain.AuditRecord
}

func (s *captureSink) Enqueue(record domain.AuditRecord) {
	s.records = append(s.records, record)
}

func auditRequest(t *testing.T, method, path, body string, sink AuditSink, handler echo.HandlerFunc, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	if err := Audit("videos", sink)(handler)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAudit_SkipsReads(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodGet, "/api/videos", "", sink, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"id": "v1"})
	}, nil)

	if len(sink.records) != 0 {
		t.Fatalf("GET must not be audited, got %d records", len(sink.records))
	}
}

func TestAudit_Create(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPost, "/api/videos", `{"title":"intro"}`, sink, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"id": "v1", "title": "intro"})
	}, nil)

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Operation != domain.OpCreate {
		t.Fatalf("expected create, got %q", record.Operation)
	}
	if record.Before != nil {
		t.Fatalf("create records carry no before state, got %v", record.Before)
	}
	if record.After["title"] != "intro" {
		t.Fatalf("expected after state from the response, got %v", record.After)
	}
	if record.EntityID != "v1" {
		t.Fatalf("expected entity id from response body, got %q", record.EntityID)
	}
	if record.EntityType != "videos" {
		t.Fatalf("expected entity type videos, got %q", record.EntityType)
	}
}

func TestAudit_UpdateDiff(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPut, "/api/videos/v7", `{"title":"old","status":"draft"}`, sink, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"title": "new", "status": "draft"})
	}, func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("v7")
	})

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Operation != domain.OpUpdate {
		t.Fatalf("expected update, got %q", record.Operation)
	}
	if record.EntityID != "v7" {
		t.Fatalf("route param wins for entity id, got %q", record.EntityID)
	}
	if len(record.ModifiedFields) != 1 || record.ModifiedFields[0] != "title" {
		t.Fatalf("expected only title changed, got %v", record.ModifiedFields)
	}
	if record.Before["title"] != "old" || record.After["title"] != "new" {
		t.Fatalf("unexpected before/after: %v / %v", record.Before, record.After)
	}
}

func TestAudit_Delete(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodDelete, "/api/videos/v9", "", sink, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("v9")
	})

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Operation != domain.OpDelete {
		t.Fatalf("expected delete, got %q", record.Operation)
	}
	if record.EntityID != "v9" {
		t.Fatalf("expected entity id v9, got %q", record.EntityID)
	}
	if record.After != nil {
		t.Fatalf("empty response means nil after, got %v", record.After)
	}
}

func TestAudit_HandlerErrorSkipsRecord(t *testing.T) {
	sink := &captureSink{}
	rec := auditRequest(t, http.MethodPost, "/api/videos", `{"title":"x"}`, sink, func(c echo.Context) error {
		return errors.New("boom")
	}, nil)

	if len(sink.records) != 0 {
		t.Fatalf("failed requests must not be audited, got %d records", len(sink.records))
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAudit_RoleDenialSkipsRecord(t *testing.T) {
	sink := &captureSink{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/videos", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(principalKey, domain.Principal{UserID: "user-1", Roles: []domain.Role{domain.RoleUser}})

	// Same composition as the router: Audit outside the role gate.
	handler := Audit("videos", sink)(IsEditor()(func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"id": "v1"})
	}))
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(sink.records) != 0 {
		t.Fatalf("denied requests must not be audited, got %d records", len(sink.records))
	}
}

func TestAudit_ErrorStatusSkipsRecord(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPost, "/api/videos", `{"title":"x"}`, sink, func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid payload"})
	}, nil)

	if len(sink.records) != 0 {
		t.Fatalf("4xx responses must not be audited, got %d records", len(sink.records))
	}
}

func TestAudit_UnknownEntityID(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPost, "/api/videos", `{"title":"x"}`, sink, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	}, nil)

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	if got := sink.records[0].EntityID; got != domain.EntityIDUnknown {
		t.Fatalf("expected unknown marker, got %q", got)
	}
}

func TestAudit_ActorFromPrincipal(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPost, "/api/videos", `{"title":"x"}`, sink, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"id": "v1"})
	}, func(c echo.Context) {
		c.Set(principalKey, domain.Principal{UserID: "user-42", Roles: []domain.Role{domain.RoleEditor}})
	})

	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
	if got := sink.records[0].ActorID; got != "user-42" {
		t.Fatalf("expected actor user-42, got %q", got)
	}
}

func TestAudit_BodyStillReadableByHandler(t *testing.T) {
	sink := &captureSink{}
	auditRequest(t, http.MethodPut, "/api/videos/v1", `{"title":"kept"}`, sink, func(c echo.Context) error {
		var payload map[string]any
		if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
			t.Fatalf("handler could not re-read body: %v", err)
		}
		if payload["title"] != "kept" {
			t.Fatalf("body was consumed by the audit tee: %v", payload)
		}
		return c.JSON(http.StatusOK, payload)
	}, func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("v1")
	})
}
