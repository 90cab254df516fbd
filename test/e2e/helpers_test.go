package e2e_test

import (
	"fmt"

	rxntypes "github.com/turtacn/ReactionMapper/pkg/types/reaction"
)

func chain(id string, symbols ...string) rxntypes.GraphDoc {
	g := rxntypes.GraphDoc{ID: id}
	for k, s := range symbols {
		g.Atoms = append(g.Atoms, rxntypes.AtomDoc{ID: fmt.Sprintf("%s%d", id, k+1), Symbol: s})
		if k > 0 {
			g.Bonds = append(g.Bonds, rxntypes.BondDoc{Begin: k - 1, End: k})
		}
	}
	return g
}

func ring(id string, n int) rxntypes.GraphDoc {
	symbols := make([]string, n)
	for k := range symbols {
		symbols[k] = "C"
	}
	g := chain(id, symbols...)
	g.Bonds = append(g.Bonds, rxntypes.BondDoc{Begin: n - 1, End: 0})
	return g
}

func unmodified(g rxntypes.GraphDoc) rxntypes.GraphDoc {
	f := false
	g.Modified = &f
	return g
}
