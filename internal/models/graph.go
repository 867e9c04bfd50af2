package models

// Step is one relationship discovered by a traversal. Depth is 1 for
// relationships leaving the start concept.
type Step struct {
	ConceptRelationship
	Depth int `json:"depth"`
}

// Graph is the deduplicated neighborhood returned by the recursive endpoints.
type Graph struct {
	Nodes []Concept `json:"nodes"`
	Edges []Edge    `json:"edges"`
}

// NewGraph returns an empty graph whose slices marshal as [] rather than null.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]Concept, 0),
		Edges: make([]Edge, 0),
	}
}
