// Package traverse implements bounded, policy-driven expansion over the
// concept relationship graph.
//
// Expansion runs level by level: every branch on the frontier is expanded
// with one batched store read per level, and each branch carries its own
// path so cycle prevention is per-path. A concept already on a branch's
// path is never re-entered by that branch, but a sibling branch that does
// not share the ancestor may expand it again.
package traverse

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/omopgraph/omopgraph/internal/models"
)

// Source reads outgoing relationships from the concept store.
//
// OutgoingRelationships returns every relationship whose source is one of
// conceptIDs, with both endpoints' attributes. A non-nil labels list may be
// used by the store to narrow the read; the engine filters regardless.
type Source interface {
	OutgoingRelationships(ctx context.Context, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error)
}

// Engine runs traversals. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	maxSteps int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSteps fails traversals that would emit more than n steps.
// Zero disables the ceiling.
func WithMaxSteps(n int) Option {
	return func(e *Engine) { e.maxSteps = n }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}

	return e
}

// path is an immutable, parent-linked list of concept ids. Children share
// their ancestors' nodes, so each branch owns only its tail.
type path struct {
	id     int64
	parent *path
}

func (p *path) push(id int64) *path {
	return &path{id: id, parent: p}
}

func (p *path) contains(id int64) bool {
	for n := p; n != nil; n = n.parent {
		if n.id == id {
			return true
		}
	}

	return false
}

// branch is a concept waiting to be expanded. visited holds every concept on
// the branch from the start up to and including the concept itself.
type branch struct {
	conceptID int64
	visited   *path
}

// Traverse expands from startID up to maxDepth levels under policy and
// returns the discovered steps ordered by depth, then source id, target id,
// and relationship label.
//
// An unknown startID or a maxDepth of zero yields an empty result. Any store
// error aborts the traversal.
func (e *Engine) Traverse( //nolint:gocognit // level loop with per-branch filtering.
	ctx context.Context,
	src Source,
	startID int64,
	maxDepth int,
	policy Policy,
) ([]models.Step, error) {
	steps := make([]models.Step, 0)
	if maxDepth <= 0 {
		return steps, nil
	}

	root := (*path)(nil).push(startID)

	// The first hop is emitted in full regardless of policy.
	first, err := src.OutgoingRelationships(ctx, []int64{startID}, nil)
	if err != nil {
		return nil, fmt.Errorf("reading relationships at depth 1: %w", err)
	}

	level := make([]models.Step, 0, len(first))
	var frontier []branch

	for _, rel := range first {
		if rel.Source.ID != startID {
			continue
		}

		level = append(level, models.Step{ConceptRelationship: rel, Depth: 1})

		if 1 < maxDepth && !root.contains(rel.Target.ID) && policy.expands(&rel.Target) {
			frontier = append(frontier, branch{conceptID: rel.Target.ID, visited: root.push(rel.Target.ID)})
		}
	}

	if steps, err = e.appendLevel(steps, level); err != nil {
		return nil, err
	}

	for depth := 2; depth <= maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("traversal interrupted at depth %d: %w", depth, err)
		}

		outgoing, err := e.fetch(ctx, src, frontier, policy)
		if err != nil {
			return nil, fmt.Errorf("reading relationships at depth %d: %w", depth, err)
		}

		level = level[:0]
		var next []branch

		for _, b := range frontier {
			for _, rel := range outgoing[b.conceptID] {
				if !policy.follows(rel.RelationshipID) || b.visited.contains(rel.Target.ID) {
					continue
				}

				level = append(level, models.Step{ConceptRelationship: rel, Depth: depth})

				if depth < maxDepth && policy.expands(&rel.Target) {
					next = append(next, branch{conceptID: rel.Target.ID, visited: b.visited.push(rel.Target.ID)})
				}
			}

			if e.maxSteps > 0 && len(steps)+len(level) > e.maxSteps {
				return nil, fmt.Errorf("%w: more than %d steps by depth %d", models.ErrTraversalTooLarge, e.maxSteps, depth)
			}
		}

		if steps, err = e.appendLevel(steps, level); err != nil {
			return nil, err
		}

		frontier = next
	}

	return steps, nil
}

// fetch reads the outgoing relationships of every distinct concept on the
// frontier in one store call and groups them by source id.
func (e *Engine) fetch(ctx context.Context, src Source, frontier []branch, policy Policy) (map[int64][]models.ConceptRelationship, error) {
	seen := make(map[int64]struct{}, len(frontier))
	ids := make([]int64, 0, len(frontier))

	for _, b := range frontier {
		if _, ok := seen[b.conceptID]; ok {
			continue
		}

		seen[b.conceptID] = struct{}{}
		ids = append(ids, b.conceptID)
	}

	slices.Sort(ids)

	rels, err := src.OutgoingRelationships(ctx, ids, policy.labelHint())
	if err != nil {
		return nil, err
	}

	bySource := make(map[int64][]models.ConceptRelationship, len(ids))
	for _, rel := range rels {
		bySource[rel.Source.ID] = append(bySource[rel.Source.ID], rel)
	}

	return bySource, nil
}

// appendLevel sorts one depth level and appends it to steps, enforcing the
// step ceiling.
func (e *Engine) appendLevel(steps, level []models.Step) ([]models.Step, error) {
	if e.maxSteps > 0 && len(steps)+len(level) > e.maxSteps {
		return nil, fmt.Errorf("%w: more than %d steps", models.ErrTraversalTooLarge, e.maxSteps)
	}

	slices.SortStableFunc(level, compareSteps)

	return append(steps, level...), nil
}

func compareSteps(a, b models.Step) int {
	if c := cmp.Compare(a.Source.ID, b.Source.ID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Target.ID, b.Target.ID); c != 0 {
		return c
	}
	return cmp.Compare(a.RelationshipID, b.RelationshipID)
}
