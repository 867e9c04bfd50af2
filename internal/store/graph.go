package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/metrics"
	"github.com/omopgraph/omopgraph/internal/models"
)

// querier is the subset of pool and transaction methods used for reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// GraphStore reads concept relationships from the OMOP vocabulary tables.
type GraphStore struct {
	Base
	outgoingSQL string
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	s := &GraphStore{Base: base}
	s.outgoingSQL = outgoingQuery(s.schema())

	return s
}

func outgoingQuery(schema string) string {
	concept := pgx.Identifier{schema, "concept"}.Sanitize()
	relationship := pgx.Identifier{schema, "concept_relationship"}.Sanitize()

	return `SELECT ` + relationshipColumns + `
		FROM ` + concept + ` c
		JOIN ` + relationship + ` cr ON c.concept_id = cr.concept_id_1
		JOIN ` + concept + ` rc ON cr.concept_id_2 = rc.concept_id
		WHERE cr.concept_id_1 = ANY($1)
			AND ($2::text[] IS NULL OR cr.relationship_id = ANY($2))
		ORDER BY cr.concept_id_1, cr.concept_id_2, cr.relationship_id`
}

// OutgoingRelationships returns the outgoing relationships of conceptIDs
// using a pooled connection. Consecutive calls may observe different
// snapshots; use View for a consistent read.
func (s *GraphStore) OutgoingRelationships(ctx context.Context, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error) {
	return s.outgoing(ctx, s.Pool, conceptIDs, labels)
}

func (s *GraphStore) outgoing(ctx context.Context, q querier, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error) {
	if len(conceptIDs) == 0 {
		return make([]models.ConceptRelationship, 0), nil
	}

	start := time.Now()

	rows, err := q.Query(ctx, s.outgoingSQL, conceptIDs, labels)
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("querying outgoing relationships: %w", err)
	}

	rels, err := collectRelationships(rows)
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues("error").Inc()

		return nil, err
	}

	metrics.StoreQueriesTotal.WithLabelValues("ok").Inc()
	metrics.StoreQueryDuration.Observe(time.Since(start).Seconds())

	s.Log.WithFields(logrus.Fields{
		"concepts": len(conceptIDs),
		"rows":     len(rels),
		"filtered": labels != nil,
	}).Trace("store.outgoing_relationships")

	return rels, nil
}

// CheckSchema verifies that the vocabulary tables are reachable.
func (s *GraphStore) CheckSchema(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sql := `SELECT EXISTS(SELECT 1 FROM ` + pgx.Identifier{s.schema(), "concept_relationship"}.Sanitize() + `)`

	var ok bool
	if err := s.Pool.QueryRow(ctx, sql).Scan(&ok); err != nil {
		return fmt.Errorf("checking %s schema: %w", s.schema(), err)
	}

	return nil
}
