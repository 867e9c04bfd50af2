package traverse

import (
	"fmt"
	"sort"

	"github.com/omopgraph/omopgraph/internal/models"
)

// Policy names accepted by Policies.Lookup.
const (
	PolicyFiltered   = "filtered"
	PolicyLimited    = "limited"
	PolicyUnfiltered = "unfiltered"
)

// AllowList is an immutable set of relationship labels.
type AllowList struct {
	labels map[string]struct{}
	sorted []string
}

// NewAllowList builds an AllowList from labels. Duplicates are collapsed.
func NewAllowList(labels ...string) AllowList {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}

	sorted := make([]string, 0, len(set))
	for l := range set {
		sorted = append(sorted, l)
	}

	sort.Strings(sorted)

	return AllowList{labels: set, sorted: sorted}
}

// Contains reports whether label is allowed.
func (a AllowList) Contains(label string) bool {
	_, ok := a.labels[label]
	return ok
}

// Len returns the number of distinct labels.
func (a AllowList) Len() int { return len(a.sorted) }

// Labels returns a sorted copy of the allowed labels.
func (a AllowList) Labels() []string {
	out := make([]string, len(a.sorted))
	copy(out, a.sorted)

	return out
}

// Policy decides which relationships a traversal follows past the first hop.
// A nil Allow means every label is followed.
type Policy struct {
	Name           string
	Allow          *AllowList
	StopOnStandard bool
}

// Filtered follows only allowed labels and does not expand standard concepts.
func Filtered(allow AllowList) Policy {
	return Policy{Name: PolicyFiltered, Allow: &allow, StopOnStandard: true}
}

// Limited has the same semantics as Filtered under its own name.
func Limited(allow AllowList) Policy {
	return Policy{Name: PolicyLimited, Allow: &allow, StopOnStandard: true}
}

// Unfiltered follows every relationship; only depth and per-path cycle
// prevention bound it.
func Unfiltered() Policy {
	return Policy{Name: PolicyUnfiltered}
}

// follows reports whether a relationship with the given label may be emitted
// beyond the first hop.
func (p Policy) follows(label string) bool {
	return p.Allow == nil || p.Allow.Contains(label)
}

// expands reports whether the traversal may continue from c.
func (p Policy) expands(c *models.Concept) bool {
	return !p.StopOnStandard || !c.IsStandard()
}

// labelHint returns the label pushdown list for store reads, or nil when
// the policy does not filter labels.
func (p Policy) labelHint() []string {
	if p.Allow == nil {
		return nil
	}

	return p.Allow.Labels()
}

// Policies is the process-wide set of named policies, built once at startup.
type Policies struct {
	byName map[string]Policy
}

// NewPolicies builds the three named policies around a shared allow-list.
func NewPolicies(allow AllowList) *Policies {
	return &Policies{byName: map[string]Policy{
		PolicyFiltered:   Filtered(allow),
		PolicyLimited:    Limited(allow),
		PolicyUnfiltered: Unfiltered(),
	}}
}

// Lookup returns the policy registered under name.
func (p *Policies) Lookup(name string) (Policy, error) {
	pol, ok := p.byName[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", models.ErrUnknownPolicy, name)
	}

	return pol, nil
}
