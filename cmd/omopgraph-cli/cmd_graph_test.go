package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omopgraph/omopgraph/client"
)

// 10 -Maps to-> 20 (standard) -Is a-> 30, plus 10 -Has finding-> 40.
const testFixture = `
concepts:
  - {id: 10, name: source}
  - {id: 20, name: standard, standard_concept: S}
  - {id: 30, name: parent}
  - {id: 40, name: finding}
relationships:
  - {source: 10, target: 20, relationship_id: Maps to}
  - {source: 20, target: 30, relationship_id: Is a}
  - {source: 10, target: 40, relationship_id: Not a real label}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	if err := os.WriteFile(path, []byte(testFixture), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGraphTraverseFixture(t *testing.T) {
	resetFlags(t)
	isolateHome(t)
	fixture := writeFixture(t)

	tests := []struct {
		policy    string
		wantNodes int
		wantEdges int
	}{
		// The first hop ignores the allow-list; 20 is standard so filtered stops there.
		{"filtered", 3, 2},
		{"limited", 3, 2},
		{"all", 4, 3},
	}

	for _, tc := range tests {
		t.Run(tc.policy, func(t *testing.T) {
			out, err := executeArgs(t, newRootCmd(), "graph", "traverse", "10", "--depth", "5", "--policy", tc.policy, "--fixture", fixture)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var g client.Graph
			if err := json.Unmarshal([]byte(out), &g); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}
			if len(g.Nodes) != tc.wantNodes || len(g.Edges) != tc.wantEdges {
				t.Errorf("got %d nodes, %d edges; want %d, %d", len(g.Nodes), len(g.Edges), tc.wantNodes, tc.wantEdges)
			}
		})
	}
}

func TestGraphTraverseFixture_DepthZero(t *testing.T) {
	resetFlags(t)
	isolateHome(t)

	out, err := executeArgs(t, newRootCmd(), "graph", "traverse", "10", "--depth", "0", "--fixture", writeFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var g client.Graph
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if g.Nodes == nil || g.Edges == nil || len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("expected empty arrays, got %s", out)
	}
}

func TestGraphTraverseRemote(t *testing.T) {
	resetFlags(t)
	isolateHome(t)

	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleGraph()) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	out, err := executeArgs(t, newRootCmd(), "--url", srv.URL, "--format", "table", "graph", "traverse", "1", "--depth", "2", "--policy", "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath := <-paths; gotPath != "/recursive_all_relationships/1/2" {
		t.Errorf("server path = %q", gotPath)
	}
	if !strings.Contains(out, "Maps to") || !strings.Contains(out, "2 nodes, 1 edges") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestGraphTraverseRemote_APIError(t *testing.T) {
	resetFlags(t)
	isolateHome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":"traversal_too_large","message":"too many steps"}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	_, err := executeArgs(t, newRootCmd(), "--url", srv.URL, "graph", "traverse", "1", "--depth", "20", "--policy", "all")
	if !client.IsTraversalTooLarge(err) {
		t.Errorf("err = %v, want traversal_too_large", err)
	}
}

func TestDoctor(t *testing.T) {
	resetFlags(t)
	isolateHome(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ok","version":"0.1.0","database":"connected"}`)) //nolint:errcheck
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ready","checks":{"database":"ok","schema":"ok"}}`)) //nolint:errcheck
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out, err := executeArgs(t, newRootCmd(), "--url", srv.URL, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All checks passed.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDoctor_Unreachable(t *testing.T) {
	resetFlags(t)
	isolateHome(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := executeArgs(t, newRootCmd(), "--url", url, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out, "[FAIL] Server reachable") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
