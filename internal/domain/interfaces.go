// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, CLI). Consumers should depend on these interfaces
// rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/omopgraph/omopgraph/internal/models"
)

// GraphService defines concept neighborhood operations.
type GraphService interface {
	// RecursiveRelationships returns the graph reachable from startID within
	// maxDepth levels under the named traversal policy.
	RecursiveRelationships(ctx context.Context, startID int64, maxDepth int, policy string) (*models.Graph, error)
}
