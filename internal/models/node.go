// Package models defines data types for the concept graph.
package models

// Concept is a vertex in the concept graph, snapshotted at traversal time.
// A non-nil StandardConcept marks the concept as standard, which filtered
// traversals treat as terminal.
type Concept struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	StandardConcept *string `json:"standard_concept"`
}

// IsStandard reports whether the concept carries a standard_concept flag.
func (c *Concept) IsStandard() bool {
	return c.StandardConcept != nil
}
