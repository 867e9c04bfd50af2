package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

type memoryRelationship struct {
	target int64
	label  string
}

// MemoryStore is an in-process concept graph. Relationships whose endpoints
// are not registered concepts are ignored on read, matching the inner joins
// of the SQL store.
type MemoryStore struct {
	mu       sync.RWMutex
	concepts map[int64]models.Concept
	outgoing map[int64][]memoryRelationship
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		concepts: make(map[int64]models.Concept),
		outgoing: make(map[int64][]memoryRelationship),
	}
}

// AddConcept registers or replaces a concept.
func (m *MemoryStore) AddConcept(c models.Concept) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.concepts[c.ID] = c
}

// AddRelationship records a directed relationship from source to target.
func (m *MemoryStore) AddRelationship(source, target int64, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outgoing[source] = append(m.outgoing[source], memoryRelationship{target: target, label: label})
}

// OutgoingRelationships implements traverse.Source.
func (m *MemoryStore) OutgoingRelationships(ctx context.Context, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.outgoingLocked(conceptIDs, labels), nil
}

func (m *MemoryStore) outgoingLocked(conceptIDs []int64, labels []string) []models.ConceptRelationship {
	var allow map[string]struct{}
	if labels != nil {
		allow = make(map[string]struct{}, len(labels))
		for _, l := range labels {
			allow[l] = struct{}{}
		}
	}

	ids := slices.Clone(conceptIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	out := make([]models.ConceptRelationship, 0)

	for _, id := range ids {
		src, ok := m.concepts[id]
		if !ok {
			continue
		}

		start := len(out)

		for _, r := range m.outgoing[id] {
			if allow != nil {
				if _, ok := allow[r.label]; !ok {
					continue
				}
			}

			dst, ok := m.concepts[r.target]
			if !ok {
				continue
			}

			out = append(out, models.ConceptRelationship{Source: src, Target: dst, RelationshipID: r.label})
		}

		slices.SortStableFunc(out[start:], func(a, b models.ConceptRelationship) int {
			if c := cmp.Compare(a.Target.ID, b.Target.ID); c != 0 {
				return c
			}
			return cmp.Compare(a.RelationshipID, b.RelationshipID)
		})
	}

	return out
}

// lockedMemory serves reads while View holds the read lock.
type lockedMemory struct {
	m *MemoryStore
}

func (l lockedMemory) OutgoingRelationships(ctx context.Context, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return l.m.outgoingLocked(conceptIDs, labels), nil
}

// View runs fn with writers excluded, giving it a consistent snapshot.
func (m *MemoryStore) View(ctx context.Context, fn func(src traverse.Source) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return fn(lockedMemory{m: m})
}

// Fixture is the YAML document accepted by LoadFixture.
type Fixture struct {
	Concepts      []FixtureConcept      `yaml:"concepts"`
	Relationships []FixtureRelationship `yaml:"relationships"`
}

// FixtureConcept describes one concept in a fixture.
type FixtureConcept struct {
	ID              int64   `yaml:"id"`
	Name            string  `yaml:"name"`
	StandardConcept *string `yaml:"standard_concept"`
}

// FixtureRelationship describes one directed relationship in a fixture.
type FixtureRelationship struct {
	Source         int64  `yaml:"source"`
	Target         int64  `yaml:"target"`
	RelationshipID string `yaml:"relationship_id"`
}

// LoadFixture decodes a YAML fixture into a new MemoryStore.
func LoadFixture(r io.Reader) (*MemoryStore, error) {
	var f Fixture

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	m := NewMemoryStore()

	for _, c := range f.Concepts {
		m.AddConcept(models.Concept{ID: c.ID, Name: c.Name, StandardConcept: c.StandardConcept})
	}

	for i, rel := range f.Relationships {
		if rel.RelationshipID == "" {
			return nil, fmt.Errorf("fixture relationship %d: relationship_id is required", i)
		}

		m.AddRelationship(rel.Source, rel.Target, rel.RelationshipID)
	}

	return m, nil
}
