package api

import (
	"context"

	"github.com/omopgraph/omopgraph/internal/domain"
)

// GraphService is the traversal service used by GraphHandler.
type GraphService = domain.GraphService

// Pinger reports database reachability.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// SchemaChecker verifies the concept tables are present and readable.
type SchemaChecker interface {
	CheckSchema(ctx context.Context) error
}
