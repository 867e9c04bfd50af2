package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/omopgraph/omopgraph/internal/models"
)

// relationshipColumns lists the columns selected for relationship reads:
// source concept, label, target concept.
const relationshipColumns = `c.concept_id, c.concept_name, c.standard_concept,
	cr.relationship_id,
	rc.concept_id, rc.concept_name, rc.standard_concept`

// scanRelationship scans a single row into a models.ConceptRelationship.
func scanRelationship(scan func(dest ...any) error) (*models.ConceptRelationship, error) {
	var r models.ConceptRelationship

	err := scan(
		&r.Source.ID,
		&r.Source.Name,
		&r.Source.StandardConcept,
		&r.RelationshipID,
		&r.Target.ID,
		&r.Target.Name,
		&r.Target.StandardConcept,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// collectRelationships drains rows into a slice and closes them.
func collectRelationships(rows pgx.Rows) ([]models.ConceptRelationship, error) {
	defer rows.Close()

	out := make([]models.ConceptRelationship, 0, 32)

	for rows.Next() {
		r, err := scanRelationship(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}

		out = append(out, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationships: %w", err)
	}

	return out, nil
}
