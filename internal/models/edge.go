package models

// Edge is a directed, labeled relationship in an assembled graph.
type Edge struct {
	SourceID       int64  `json:"source_id"`
	TargetID       int64  `json:"target_id"`
	RelationshipID string `json:"relationship_id"`
}

// ConceptRelationship is one outgoing relationship as read from the store,
// carrying the attributes of both endpoints.
type ConceptRelationship struct {
	Source         Concept `json:"source"`
	Target         Concept `json:"target"`
	RelationshipID string  `json:"relationship_id"`
}

// Edge returns the relationship as a graph edge.
func (r *ConceptRelationship) Edge() Edge {
	return Edge{
		SourceID:       r.Source.ID,
		TargetID:       r.Target.ID,
		RelationshipID: r.RelationshipID,
	}
}
