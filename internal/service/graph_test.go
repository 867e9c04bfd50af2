package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/store"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// scenarioStore holds 1 -Is a-> 2 -Is a-> 3 with 2 standard.
func scenarioStore() *store.MemoryStore {
	std := "S"
	m := store.NewMemoryStore()
	m.AddConcept(models.Concept{ID: 1, Name: "one"})
	m.AddConcept(models.Concept{ID: 2, Name: "two", StandardConcept: &std})
	m.AddConcept(models.Concept{ID: 3, Name: "three"})
	m.AddRelationship(1, 2, "Is a")
	m.AddRelationship(2, 3, "Is a")

	return m
}

func newTestGraphService(s SnapshotStore, opts ...traverse.Option) *GraphService {
	return NewGraphService(
		s,
		traverse.NewEngine(opts...),
		traverse.NewPolicies(traverse.NewAllowList(traverse.DefaultRelationships...)),
		GraphServiceConfig{Timeout: 5 * time.Second, MaxDepth: 10},
		testLogger(),
	)
}

func nodeIDs(g *models.Graph) []int64 {
	ids := make([]int64, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}

	return ids
}

func TestGraphService_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		start     int64
		policy    string
		wantNodes []int64
		wantEdges []models.Edge
	}{
		{
			name:      "filtered stops at standard",
			start:     1,
			policy:    traverse.PolicyFiltered,
			wantNodes: []int64{1, 2},
			wantEdges: []models.Edge{{SourceID: 1, TargetID: 2, RelationshipID: "Is a"}},
		},
		{
			name:      "limited stops at standard",
			start:     1,
			policy:    traverse.PolicyLimited,
			wantNodes: []int64{1, 2},
			wantEdges: []models.Edge{{SourceID: 1, TargetID: 2, RelationshipID: "Is a"}},
		},
		{
			name:      "unfiltered expands through standard",
			start:     1,
			policy:    traverse.PolicyUnfiltered,
			wantNodes: []int64{1, 2, 3},
			wantEdges: []models.Edge{
				{SourceID: 1, TargetID: 2, RelationshipID: "Is a"},
				{SourceID: 2, TargetID: 3, RelationshipID: "Is a"},
			},
		},
		{
			name:      "unknown start",
			start:     404,
			policy:    traverse.PolicyFiltered,
			wantNodes: []int64{},
			wantEdges: []models.Edge{},
		},
	}

	svc := newTestGraphService(scenarioStore())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := svc.RecursiveRelationships(context.Background(), tc.start, 5, tc.policy)
			if err != nil {
				t.Fatalf("RecursiveRelationships: %v", err)
			}

			ids := nodeIDs(g)
			if len(ids) != len(tc.wantNodes) {
				t.Fatalf("nodes = %v, want %v", ids, tc.wantNodes)
			}

			for i := range ids {
				if ids[i] != tc.wantNodes[i] {
					t.Errorf("nodes = %v, want %v", ids, tc.wantNodes)
					break
				}
			}

			if len(g.Edges) != len(tc.wantEdges) {
				t.Fatalf("edges = %v, want %v", g.Edges, tc.wantEdges)
			}

			for i := range g.Edges {
				if g.Edges[i] != tc.wantEdges[i] {
					t.Errorf("edges[%d] = %+v, want %+v", i, g.Edges[i], tc.wantEdges[i])
				}
			}
		})
	}
}

func TestGraphService_InvalidInput(t *testing.T) {
	mock := &mockSnapshotStore{view: func(context.Context, func(traverse.Source) error) error {
		t.Error("store should not be called for invalid input")
		return nil
	}}
	svc := newTestGraphService(mock)

	if _, err := svc.RecursiveRelationships(context.Background(), 1, -1, traverse.PolicyFiltered); !errors.Is(err, models.ErrInvalidDepth) {
		t.Errorf("negative depth err = %v, want ErrInvalidDepth", err)
	}

	if _, err := svc.RecursiveRelationships(context.Background(), 1, 11, traverse.PolicyFiltered); !errors.Is(err, models.ErrInvalidDepth) {
		t.Errorf("depth over limit err = %v, want ErrInvalidDepth", err)
	}

	if _, err := svc.RecursiveRelationships(context.Background(), 1, 2, "sideways"); !errors.Is(err, models.ErrUnknownPolicy) {
		t.Errorf("unknown policy err = %v, want ErrUnknownPolicy", err)
	}
}

func TestGraphService_StoreErrorPropagates(t *testing.T) {
	dbDown := errors.New("db down")
	mock := &mockSnapshotStore{view: func(context.Context, func(traverse.Source) error) error {
		return dbDown
	}}
	svc := newTestGraphService(mock)

	g, err := svc.RecursiveRelationships(context.Background(), 1, 3, traverse.PolicyUnfiltered)
	if !errors.Is(err, dbDown) {
		t.Errorf("err = %v, want db down", err)
	}

	if g != nil {
		t.Errorf("graph = %+v, want nil on failure", g)
	}

	if mock.calls != 1 {
		t.Errorf("store calls = %d, want 1", mock.calls)
	}
}

func TestGraphService_StepLimit(t *testing.T) {
	svc := newTestGraphService(scenarioStore(), traverse.WithMaxSteps(1))

	_, err := svc.RecursiveRelationships(context.Background(), 1, 5, traverse.PolicyUnfiltered)
	if !errors.Is(err, models.ErrTraversalTooLarge) {
		t.Errorf("err = %v, want ErrTraversalTooLarge", err)
	}
}

func TestGraphService_AppliesTimeout(t *testing.T) {
	var sawDeadline bool
	mock := &mockSnapshotStore{view: func(ctx context.Context, _ func(traverse.Source) error) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	}}
	svc := newTestGraphService(mock)

	if _, err := svc.RecursiveRelationships(context.Background(), 1, 1, traverse.PolicyFiltered); err != nil {
		t.Fatalf("RecursiveRelationships: %v", err)
	}

	if !sawDeadline {
		t.Error("store context has no deadline")
	}
}

func TestGraphService_ConcurrentRequests(t *testing.T) {
	svc := newTestGraphService(scenarioStore())

	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			policy := traverse.PolicyFiltered
			want := 1
			if i%2 == 0 {
				policy = traverse.PolicyUnfiltered
				want = 2
			}

			g, err := svc.RecursiveRelationships(context.Background(), 1, 5, policy)
			if err != nil {
				errs <- err
				return
			}

			if len(g.Edges) != want {
				errs <- errors.New("unexpected edge count for " + policy)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestNewGraphService_Defaults(t *testing.T) {
	svc := NewGraphService(scenarioStore(), traverse.NewEngine(), traverse.NewPolicies(traverse.NewAllowList()), GraphServiceConfig{}, testLogger())

	if svc.MaxDepth() != DefaultMaxDepth {
		t.Errorf("MaxDepth() = %d, want %d", svc.MaxDepth(), DefaultMaxDepth)
	}

	if svc.cfg.Timeout != DefaultTraverseTimeout {
		t.Errorf("timeout = %v, want %v", svc.cfg.Timeout, DefaultTraverseTimeout)
	}
}
