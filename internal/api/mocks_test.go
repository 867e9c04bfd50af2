package api_test

import (
	"context"

	"github.com/omopgraph/omopgraph/internal/models"
)

// mockGraphService implements api.GraphService for testing.
type mockGraphService struct {
	recursiveFn func(ctx context.Context, startID int64, maxDepth int, policy string) (*models.Graph, error)
}

func (m *mockGraphService) RecursiveRelationships(ctx context.Context, startID int64, maxDepth int, policy string) (*models.Graph, error) {
	return m.recursiveFn(ctx, startID, maxDepth, policy)
}

// mockPinger implements api.Pinger for testing.
type mockPinger struct {
	err error
}

func (m *mockPinger) HealthCheck(context.Context) error { return m.err }

// mockSchemaChecker implements api.SchemaChecker for testing.
type mockSchemaChecker struct {
	err error
}

func (m *mockSchemaChecker) CheckSchema(context.Context) error { return m.err }
