package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// ethanol builds C-C-O with identifiers a1..a3.
func ethanol(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph("ethanol")
	g.AddAtom("a1", "C")
	g.AddAtom("a2", "C")
	g.AddAtom("a3", "O")
	_, err := g.AddBond(0, 1, BondSingle)
	require.NoError(t, err)
	_, err = g.AddBond(1, 2, BondSingle)
	require.NoError(t, err)
	return g
}

func TestGraph_Construction(t *testing.T) {
	g := ethanol(t)
	assert.Equal(t, 3, g.AtomCount())
	assert.Equal(t, 2, g.BondCount())
	assert.False(t, g.IsEmpty())
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
	assert.Equal(t, 2, g.Degree(1))
	assert.Equal(t, []int{0, 1}, g.IncidentBonds(1))
	assert.NotNil(t, g.BondBetween(2, 1))
	assert.Nil(t, g.BondBetween(0, 2))
	assert.Equal(t, -1, g.BondIndex(0, 2))
	assert.Nil(t, g.Atom(3))
	assert.Nil(t, g.Neighbors(-1))
	require.NoError(t, g.Validate())
}

func TestGraph_AddBondRejectsMalformed(t *testing.T) {
	g := ethanol(t)
	tests := []struct {
		name  string
		i, j  int
		order BondOrder
	}{
		{"out of range", 0, 5, BondSingle},
		{"negative", -1, 0, BondSingle},
		{"self loop", 1, 1, BondSingle},
		{"unknown order", 0, 2, BondOrder(9)},
		{"duplicate", 1, 0, BondDouble},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.AddBond(tt.i, tt.j, tt.order)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeBondInvalid))
		})
	}
	assert.Equal(t, 2, g.BondCount())
}

func TestGraph_AromaticBondMarksAtoms(t *testing.T) {
	g := NewGraph("frag")
	g.AddAtom("x1", "C")
	g.AddAtom("x2", "C")
	b, err := g.AddBond(0, 1, BondAromatic)
	require.NoError(t, err)
	assert.True(t, b.Aromatic)
	assert.True(t, g.Atoms[0].Aromatic)
	assert.True(t, g.Atoms[1].Aromatic)
	assert.Equal(t, 0, b.Other(1))
	assert.Equal(t, 1, b.Other(0))
}

func TestGraph_AtomByID(t *testing.T) {
	g := ethanol(t)

	a, err := g.AtomByID("a3")
	require.NoError(t, err)
	assert.Equal(t, "O", a.Symbol)

	_, err = g.AtomByID("")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomIdentifierMissing))

	_, err = g.AtomByID("zz")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomNotFound))

	g.AddAtom("a1", "H")
	_, err = g.AtomByID("a1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomAmbiguous))
}

func TestGraph_CloneIsDeep(t *testing.T) {
	g := ethanol(t)
	c := g.Clone()

	require.Equal(t, g.AtomCount(), c.AtomCount())
	for i := range g.Atoms {
		assert.Equal(t, g.Atoms[i].ID, c.Atoms[i].ID)
		assert.NotSame(t, g.Atoms[i], c.Atoms[i])
	}
	require.NoError(t, c.Validate())

	c.Atoms[0].ID = "changed"
	c.AddAtom("a4", "N")
	_, err := c.AddBond(2, 3, BondSingle)
	require.NoError(t, err)
	assert.Equal(t, "a1", g.Atoms[0].ID)
	assert.Equal(t, 3, g.AtomCount())
	assert.Equal(t, []int{1}, g.Neighbors(2))

	var nilGraph *Graph
	assert.Nil(t, nilGraph.Clone())
}

func TestGraph_ConnectedComponents(t *testing.T) {
	assert.Equal(t, 0, NewGraph("empty").ConnectedComponents())

	g := ethanol(t)
	assert.Equal(t, 1, g.ConnectedComponents())

	g.AddAtom("na", "Na")
	g.AddAtom("cl", "Cl")
	assert.Equal(t, 3, g.ConnectedComponents())
}

func TestGraph_Formula(t *testing.T) {
	g := ethanol(t)
	g.AddAtom("h1", "H")
	assert.Equal(t, "C2HO", g.Formula())

	water := NewGraph("water")
	water.AddAtom("o", "O")
	water.AddAtom("h1", "H")
	water.AddAtom("h2", "H")
	assert.Equal(t, "H2O", water.Formula())
	assert.Contains(t, water.String(), "water[H2O atoms=3 bonds=0]")
}

func TestGraph_ValidateDetectsCorruption(t *testing.T) {
	var nilGraph *Graph
	assert.True(t, errors.IsCode(nilGraph.Validate(), errors.ErrCodeGraphInvalid))

	g := ethanol(t)
	g.Atoms[1].Index = 7
	assert.True(t, errors.IsCode(g.Validate(), errors.ErrCodeGraphInvalid))

	g = ethanol(t)
	g.Atoms[2].Symbol = ""
	assert.Error(t, g.Validate())

	g = ethanol(t)
	g.Bonds = append(g.Bonds, &Bond{Begin: 0, End: 2, Order: BondSingle})
	assert.Error(t, g.Validate())
}

func TestBondOrder_String(t *testing.T) {
	assert.Equal(t, "single", BondSingle.String())
	assert.Equal(t, "aromatic", BondAromatic.String())
	assert.Equal(t, "order(0)", BondOrder(0).String())
	assert.False(t, BondOrder(0).IsValid())
}
