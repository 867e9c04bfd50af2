package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/omopgraph/omopgraph/internal/api"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(nil, nil, testLogger(), "test-v1")

	r := gin.New()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}

	if body["version"] != "test-v1" {
		t.Errorf("expected version 'test-v1', got %v", body["version"])
	}

	if body["database"] != "not_configured" {
		t.Errorf("expected database 'not_configured', got %v", body["database"])
	}
}

func TestLiveness_DatabaseDownStillOK(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(&mockPinger{err: errors.New("down")}, nil, testLogger(), "v")

	r := gin.New()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["database"] != "disconnected" {
		t.Errorf("expected database 'disconnected', got %v", body["database"])
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db         api.Pinger
		schema     api.SchemaChecker
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "ready",
			db:         &mockPinger{},
			schema:     &mockSchemaChecker{},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"database": "ok", "schema": "ok"},
		},
		{
			name:       "database down",
			db:         &mockPinger{err: errors.New("refused")},
			schema:     &mockSchemaChecker{},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "error", "schema": "unknown"},
		},
		{
			name:       "schema missing",
			db:         &mockPinger{},
			schema:     &mockSchemaChecker{err: errors.New("relation does not exist")},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "ok", "schema": "error"},
		},
		{
			name:       "no database",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"database": "not_configured", "schema": "unknown"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := api.NewHealthHandler(tc.db, tc.schema, testLogger(), "v")

			r := gin.New()
			r.GET("/ready", h.Readiness)

			w := doRequest(r, http.MethodGet, "/ready")
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			for k, want := range tc.wantChecks {
				if body.Checks[k] != want {
					t.Errorf("checks[%s] = %q, want %q", k, body.Checks[k], want)
				}
			}
		})
	}
}
