package client

// Node is a concept in a traversal result.
type Node struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	StandardConcept *string `json:"standard_concept"`
}

// Edge is a relationship in a traversal result.
type Edge struct {
	SourceID       int64  `json:"source_id"`
	TargetID       int64  `json:"target_id"`
	RelationshipID string `json:"relationship_id"`
}

// Graph is the node/edge result of a traversal.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id int64) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessResponse is returned by the readiness endpoint.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
