// Package molecule provides the molecular graph consumed by the matching
// engine: atoms carrying stable identifiers and typed bonds between them.
//
// A Graph is built once (NewGraph, AddAtom, AddBond) and is read-only from
// the moment it is handed to a reaction.  Concurrent readers need no locking.
package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// BondOrder is the chemical bond multiplicity.
type BondOrder int

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// String implements fmt.Stringer.
func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondAromatic:
		return "aromatic"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// IsValid reports whether o is one of the known orders.
func (o BondOrder) IsValid() bool {
	return o >= BondSingle && o <= BondAromatic
}

// Atom is a vertex of a Graph.  An empty ID is the null identifier.
type Atom struct {
	ID       string
	Symbol   string
	Index    int
	Charge   int
	Aromatic bool
}

// Bond is an undirected edge between the atoms at Begin and End.
type Bond struct {
	Begin    int
	End      int
	Order    BondOrder
	Aromatic bool
}

// Other returns the atom index at the opposite end of the bond from i.
func (b *Bond) Other(i int) int {
	if b.Begin == i {
		return b.End
	}
	return b.Begin
}

type edge struct {
	to   int
	bond int
}

// Graph is a molecular graph.
type Graph struct {
	ID    string
	Atoms []*Atom
	Bonds []*Bond

	adj [][]edge
}

// NewGraph returns an empty graph with the given identifier.
func NewGraph(id string) *Graph {
	return &Graph{ID: id}
}

// AddAtom appends an atom and returns it.  Index is assigned from the
// atom's position.
func (g *Graph) AddAtom(id, symbol string) *Atom {
	a := &Atom{ID: id, Symbol: symbol, Index: len(g.Atoms)}
	g.Atoms = append(g.Atoms, a)
	g.adj = append(g.adj, nil)
	return a
}

// AddBond connects atoms i and j.  Self loops, parallel bonds, unknown
// orders and out-of-range indices are rejected.
func (g *Graph) AddBond(i, j int, order BondOrder) (*Bond, error) {
	n := len(g.Atoms)
	if i < 0 || i >= n || j < 0 || j >= n {
		return nil, errors.Newf(errors.ErrCodeBondInvalid, "bond (%d,%d) references an atom outside [0,%d)", i, j, n).
			WithDetail("graph=" + g.ID)
	}
	if i == j {
		return nil, errors.Newf(errors.ErrCodeBondInvalid, "self loop on atom %d", i).WithDetail("graph=" + g.ID)
	}
	if !order.IsValid() {
		return nil, errors.Newf(errors.ErrCodeBondInvalid, "bond (%d,%d) has unknown order %d", i, j, int(order)).
			WithDetail("graph=" + g.ID)
	}
	if g.BondBetween(i, j) != nil {
		return nil, errors.Newf(errors.ErrCodeBondInvalid, "duplicate bond (%d,%d)", i, j).WithDetail("graph=" + g.ID)
	}
	b := &Bond{Begin: i, End: j, Order: order, Aromatic: order == BondAromatic}
	g.Bonds = append(g.Bonds, b)
	idx := len(g.Bonds) - 1
	g.adj[i] = append(g.adj[i], edge{to: j, bond: idx})
	g.adj[j] = append(g.adj[j], edge{to: i, bond: idx})
	if b.Aromatic {
		g.Atoms[i].Aromatic = true
		g.Atoms[j].Aromatic = true
	}
	return b, nil
}

// AtomCount returns the number of atoms.
func (g *Graph) AtomCount() int {
	if g == nil {
		return 0
	}
	return len(g.Atoms)
}

// BondCount returns the number of bonds.
func (g *Graph) BondCount() int {
	if g == nil {
		return 0
	}
	return len(g.Bonds)
}

// IsEmpty reports whether the graph has no atoms.
func (g *Graph) IsEmpty() bool { return g.AtomCount() == 0 }

// Atom returns the atom at index i or nil.
func (g *Graph) Atom(i int) *Atom {
	if i < 0 || i >= len(g.Atoms) {
		return nil
	}
	return g.Atoms[i]
}

// Degree returns the number of bonds incident to atom i.
func (g *Graph) Degree(i int) int {
	if i < 0 || i >= len(g.adj) {
		return 0
	}
	return len(g.adj[i])
}

// Neighbors returns the indices of the atoms bonded to atom i, in bond
// insertion order.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	out := make([]int, len(g.adj[i]))
	for k, e := range g.adj[i] {
		out[k] = e.to
	}
	return out
}

// IncidentBonds returns the indices into Bonds of the bonds touching atom i.
func (g *Graph) IncidentBonds(i int) []int {
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	out := make([]int, len(g.adj[i]))
	for k, e := range g.adj[i] {
		out[k] = e.bond
	}
	return out
}

// BondBetween returns the bond joining atoms i and j, or nil.
func (g *Graph) BondBetween(i, j int) *Bond {
	if idx := g.BondIndex(i, j); idx >= 0 {
		return g.Bonds[idx]
	}
	return nil
}

// BondIndex returns the index of the bond joining i and j, or -1.
func (g *Graph) BondIndex(i, j int) int {
	if i < 0 || i >= len(g.adj) {
		return -1
	}
	for _, e := range g.adj[i] {
		if e.to == j {
			return e.bond
		}
	}
	return -1
}

// AtomByID returns the unique atom carrying id.
//
// An empty id fails with ErrCodeAtomIdentifierMissing, no match with
// ErrCodeAtomNotFound and more than one match with ErrCodeAtomAmbiguous.
func (g *Graph) AtomByID(id string) (*Atom, error) {
	if id == "" {
		return nil, errors.New(errors.ErrCodeAtomIdentifierMissing, "atom identifier is empty").
			WithDetail("graph=" + g.ID)
	}
	var found *Atom
	for _, a := range g.Atoms {
		if a.ID != id {
			continue
		}
		if found != nil {
			return nil, errors.Newf(errors.ErrCodeAtomAmbiguous, "atom identifier %q occurs more than once", id).
				WithDetail("graph=" + g.ID)
		}
		found = a
	}
	if found == nil {
		return nil, errors.Newf(errors.ErrCodeAtomNotFound, "atom %q not found", id).WithDetail("graph=" + g.ID)
	}
	return found, nil
}

// Clone returns a deep copy.  Atom identifiers, indices and bond order are
// preserved; the copy shares no pointers with g.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	c := &Graph{
		ID:    g.ID,
		Atoms: make([]*Atom, len(g.Atoms)),
		Bonds: make([]*Bond, len(g.Bonds)),
		adj:   make([][]edge, len(g.adj)),
	}
	for i, a := range g.Atoms {
		cp := *a
		c.Atoms[i] = &cp
	}
	for i, b := range g.Bonds {
		cp := *b
		c.Bonds[i] = &cp
	}
	for i, edges := range g.adj {
		c.adj[i] = append([]edge(nil), edges...)
	}
	return c
}

// ConnectedComponents returns the number of connected components.  An empty
// graph has zero.
func (g *Graph) ConnectedComponents() int {
	n := g.AtomCount()
	seen := make([]bool, n)
	stack := make([]int, 0, n)
	components := 0
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		components++
		seen[s] = true
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.adj[v] {
				if !seen[e.to] {
					seen[e.to] = true
					stack = append(stack, e.to)
				}
			}
		}
	}
	return components
}

// Formula returns a Hill-ordered element count string, e.g. "C6H12O6".
// Only explicit atoms are counted.
func (g *Graph) Formula() string {
	counts := make(map[string]int)
	var symbols []string
	for _, a := range g.Atoms {
		if counts[a.Symbol] == 0 {
			symbols = append(symbols, a.Symbol)
		}
		counts[a.Symbol]++
	}
	var sb strings.Builder
	write := func(sym string) {
		sb.WriteString(sym)
		if n := counts[sym]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
		delete(counts, sym)
	}
	if counts["C"] > 0 {
		write("C")
		if counts["H"] > 0 {
			write("H")
		}
	}
	rest := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if counts[s] > 0 {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	for _, s := range rest {
		write(s)
	}
	return sb.String()
}

// Validate checks the structural consistency of g: atom indices match their
// positions, bonds reference existing atoms and the adjacency agrees with
// the bond list.
func (g *Graph) Validate() error {
	if g == nil {
		return errors.New(errors.ErrCodeGraphInvalid, "graph is nil")
	}
	if len(g.adj) != len(g.Atoms) {
		return errors.New(errors.ErrCodeGraphInvalid, "adjacency is out of sync with atoms").WithDetail("graph=" + g.ID)
	}
	for i, a := range g.Atoms {
		if a == nil {
			return errors.Newf(errors.ErrCodeGraphInvalid, "atom %d is nil", i).WithDetail("graph=" + g.ID)
		}
		if a.Index != i {
			return errors.Newf(errors.ErrCodeGraphInvalid, "atom %d carries index %d", i, a.Index).WithDetail("graph=" + g.ID)
		}
		if a.Symbol == "" {
			return errors.Newf(errors.ErrCodeGraphInvalid, "atom %d has no element symbol", i).WithDetail("graph=" + g.ID)
		}
	}
	degree := 0
	for k, b := range g.Bonds {
		if b.Begin < 0 || b.Begin >= len(g.Atoms) || b.End < 0 || b.End >= len(g.Atoms) || b.Begin == b.End {
			return errors.Newf(errors.ErrCodeBondInvalid, "bond %d (%d,%d) is malformed", k, b.Begin, b.End).WithDetail("graph=" + g.ID)
		}
		if g.BondIndex(b.Begin, b.End) != k || g.BondIndex(b.End, b.Begin) != k {
			return errors.Newf(errors.ErrCodeGraphInvalid, "bond %d is not indexed", k).WithDetail("graph=" + g.ID)
		}
	}
	for _, edges := range g.adj {
		degree += len(edges)
	}
	if degree != 2*len(g.Bonds) {
		return errors.New(errors.ErrCodeGraphInvalid, "adjacency lists extra bonds").WithDetail("graph=" + g.ID)
	}
	return nil
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	if g == nil {
		return "<nil graph>"
	}
	return fmt.Sprintf("%s[%s atoms=%d bonds=%d]", g.ID, g.Formula(), len(g.Atoms), len(g.Bonds))
}
