// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/assembler"
	"github.com/omopgraph/omopgraph/internal/domain"
	"github.com/omopgraph/omopgraph/internal/metrics"
	"github.com/omopgraph/omopgraph/internal/middleware"
	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

// Defaults for GraphServiceConfig zero values.
const (
	DefaultTraverseTimeout = 30 * time.Second
	DefaultMaxDepth        = 20
)

// SnapshotStore is the data-access interface GraphService depends on.
// View must give fn a source that reads one consistent snapshot.
type SnapshotStore interface {
	View(ctx context.Context, fn func(src traverse.Source) error) error
}

// Compile-time check: *GraphService must satisfy domain.GraphService.
var _ domain.GraphService = (*GraphService)(nil)

// GraphServiceConfig bounds traversal requests.
type GraphServiceConfig struct {
	Timeout  time.Duration
	MaxDepth int
}

// GraphService runs traversals against a snapshot and assembles the result.
type GraphService struct {
	store    SnapshotStore
	engine   *traverse.Engine
	policies *traverse.Policies
	cfg      GraphServiceConfig
	log      *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(
	store SnapshotStore,
	engine *traverse.Engine,
	policies *traverse.Policies,
	cfg GraphServiceConfig,
	log *logrus.Logger,
) *GraphService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTraverseTimeout
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	return &GraphService{store: store, engine: engine, policies: policies, cfg: cfg, log: log}
}

// MaxDepth returns the largest accepted max_depth.
func (s *GraphService) MaxDepth() int {
	return s.cfg.MaxDepth
}

// RecursiveRelationships traverses from startID under the named policy and
// returns the assembled graph. An unknown start concept yields an empty graph.
func (s *GraphService) RecursiveRelationships(ctx context.Context, startID int64, maxDepth int, policyName string) (*models.Graph, error) {
	if maxDepth < 0 || maxDepth > s.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", models.ErrInvalidDepth, maxDepth, s.cfg.MaxDepth)
	}

	policy, err := s.policies.Lookup(policyName)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"start_id":  startID,
		"max_depth": maxDepth,
		"policy":    policy.Name,
	}
	if rid := middleware.RequestIDFromContext(ctx); rid != "" {
		fields["request_id"] = rid
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()

	var steps []models.Step

	err = s.store.View(ctx, func(src traverse.Source) error {
		var terr error
		steps, terr = s.engine.Traverse(ctx, src, startID, maxDepth, policy)

		return terr
	})
	if err != nil {
		s.log.WithFields(fields).WithError(err).Warn("graph.recursive_relationships failed")

		return nil, fmt.Errorf("traversing from concept %d: %w", startID, err)
	}

	g := assembler.Assemble(steps)
	elapsed := time.Since(start)

	metrics.TraversalDuration.WithLabelValues(policy.Name).Observe(elapsed.Seconds())
	metrics.TraversalSteps.WithLabelValues(policy.Name).Observe(float64(len(steps)))

	fields["steps"] = len(steps)
	fields["nodes"] = len(g.Nodes)
	fields["edges"] = len(g.Edges)
	fields["duration"] = elapsed.String()
	s.log.WithFields(fields).Debug("graph.recursive_relationships")

	return g, nil
}
