package mapping

import (
	"fmt"
	"strings"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
)

// AtomPair is one correspondence from a query atom to a target atom.
type AtomPair struct {
	Query  *molecule.Atom
	Target *molecule.Atom
}

// AtomMapping is an insertion-ordered list of atom correspondences bound to
// a query and a target graph.  A query atom appears at most once; Put on an
// already mapped query atom replaces its target in place.
type AtomMapping struct {
	query   *molecule.Graph
	target  *molecule.Graph
	pairs   []AtomPair
	byQuery map[*molecule.Atom]int
}

// NewAtomMapping returns an empty mapping between query and target.
func NewAtomMapping(query, target *molecule.Graph) *AtomMapping {
	return &AtomMapping{
		query:   query,
		target:  target,
		byQuery: make(map[*molecule.Atom]int),
	}
}

// Query returns the query graph.
func (m *AtomMapping) Query() *molecule.Graph { return m.query }

// Target returns the target graph.
func (m *AtomMapping) Target() *molecule.Graph { return m.target }

// Put records q → t.  Nil atoms are ignored.
func (m *AtomMapping) Put(q, t *molecule.Atom) {
	if q == nil || t == nil {
		return
	}
	if k, ok := m.byQuery[q]; ok {
		m.pairs[k].Target = t
		return
	}
	m.byQuery[q] = len(m.pairs)
	m.pairs = append(m.pairs, AtomPair{Query: q, Target: t})
}

// Lookup returns the target of q.
func (m *AtomMapping) Lookup(q *molecule.Atom) (*molecule.Atom, bool) {
	k, ok := m.byQuery[q]
	if !ok {
		return nil, false
	}
	return m.pairs[k].Target, true
}

// Count returns the number of correspondences.
func (m *AtomMapping) Count() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns the correspondences in insertion order.  The slice is a copy.
func (m *AtomMapping) Pairs() []AtomPair {
	if m == nil {
		return nil
	}
	return append([]AtomPair(nil), m.pairs...)
}

// Indices returns the correspondences as (query index, target index).
func (m *AtomMapping) Indices() [][2]int {
	if m == nil {
		return nil
	}
	out := make([][2]int, len(m.pairs))
	for k, p := range m.pairs {
		out[k] = [2]int{p.Query.Index, p.Target.Index}
	}
	return out
}

// IDPairs returns the correspondences as (query ID, target ID).
func (m *AtomMapping) IDPairs() [][2]string {
	if m == nil {
		return nil
	}
	out := make([][2]string, len(m.pairs))
	for k, p := range m.pairs {
		out[k] = [2]string{p.Query.ID, p.Target.ID}
	}
	return out
}

// String renders "q1->t1 q2->t2 ..." by atom identifier.
func (m *AtomMapping) String() string {
	parts := make([]string, 0, m.Count())
	for _, p := range m.IDPairs() {
		parts = append(parts, fmt.Sprintf("%s->%s", p[0], p[1]))
	}
	return strings.Join(parts, " ")
}
