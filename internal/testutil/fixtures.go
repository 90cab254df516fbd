package testutil

import (
	"fmt"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
)

// Chain builds a linear graph of the given element symbols with single
// bonds.  Atom identifiers are "<id>.<n>", n starting at 1.
func Chain(id string, symbols ...string) *molecule.Graph {
	g := molecule.NewGraph(id)
	for k, s := range symbols {
		g.AddAtom(fmt.Sprintf("%s.%d", id, k+1), s)
		if k > 0 {
			if _, err := g.AddBond(k-1, k, molecule.BondSingle); err != nil {
				panic(err)
			}
		}
	}
	return g
}

// Ring builds a cycle of n carbons.
func Ring(id string, n int) *molecule.Graph {
	g := molecule.NewGraph(id)
	for k := 0; k < n; k++ {
		g.AddAtom(fmt.Sprintf("%s.%d", id, k+1), "C")
	}
	for k := 0; k < n; k++ {
		if _, err := g.AddBond(k, (k+1)%n, molecule.BondSingle); err != nil {
			panic(err)
		}
	}
	return g
}
