package client

import (
	"context"
	"fmt"
)

// Policy selects which traversal route is called.
type Policy string

// Traversal policies.
const (
	PolicyFiltered Policy = "filtered"
	PolicyLimited  Policy = "limited"
	PolicyAll      Policy = "all"
)

var policyRoutes = map[Policy]string{
	PolicyFiltered: "/recursive_relationships",
	PolicyLimited:  "/recursive_relationships_limited",
	PolicyAll:      "/recursive_all_relationships",
}

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if _, ok := policyRoutes[p]; !ok {
		return "", fmt.Errorf("unknown policy %q (want filtered, limited, or all)", s)
	}
	return p, nil
}

// GraphService handles graph traversal operations.
type GraphService struct {
	c *Client
}

// RecursiveRelationships traverses from startID up to maxDepth levels under
// the given policy.
func (s *GraphService) RecursiveRelationships(ctx context.Context, startID int64, maxDepth int, policy Policy) (*Graph, error) {
	route, ok := policyRoutes[policy]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q", policy)
	}

	var resp Graph
	if err := s.c.get(ctx, fmt.Sprintf("%s/%d/%d", route, startID, maxDepth), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
