// Package assembler turns an ordered traversal step sequence into a node/edge
// graph.
package assembler

import "github.com/omopgraph/omopgraph/internal/models"

// Assemble builds a graph from steps in the order given. Each concept id
// appears once in Nodes, with the attributes it had where it was first seen;
// node order follows first appearance, source before target. Edges are
// copied one per step with no deduplication, so an edge reached along two
// paths appears twice.
func Assemble(steps []models.Step) *models.Graph {
	g := &models.Graph{
		Nodes: make([]models.Concept, 0, len(steps)+1),
		Edges: make([]models.Edge, 0, len(steps)),
	}

	seen := make(map[int64]struct{}, len(steps)+1)
	add := func(c models.Concept) {
		if _, ok := seen[c.ID]; ok {
			return
		}

		seen[c.ID] = struct{}{}
		g.Nodes = append(g.Nodes, c)
	}

	for i := range steps {
		add(steps[i].Source)
		add(steps[i].Target)
		g.Edges = append(g.Edges, steps[i].Edge())
	}

	return g
}
