package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

func TestParseTheory(t *testing.T) {
	for _, in := range []string{"MIN", "max", " Mixture ", "rings"} {
		th, err := ParseTheory(in)
		require.NoError(t, err, in)
		assert.True(t, th.IsValid())
	}
	_, err := ParseTheory("BOND")
	assert.True(t, errors.IsCode(err, errors.ErrCodeTheoryUnsupported))
	assert.False(t, Theory("").IsValid())
	assert.Equal(t, "RINGS", TheoryRings.String())
	assert.Len(t, Theories, 4)
}

func TestFlagsFor(t *testing.T) {
	tests := []struct {
		theory   Theory
		hasRings bool
		want     MatchFlags
	}{
		{TheoryMin, false, MatchFlags{AtomTypeMatch: true}},
		{TheoryMin, true, MatchFlags{RingMatch: true, AtomTypeMatch: true}},
		{TheoryMax, true, MatchFlags{RingMatch: true, AtomTypeMatch: true}},
		{TheoryRings, false, MatchFlags{AtomTypeMatch: true}},
		{TheoryMixture, true, MatchFlags{RingMatch: true}},
		{TheoryMixture, false, MatchFlags{}},
	}
	for _, tt := range tests {
		got, ok := FlagsFor(tt.theory, tt.hasRings)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "%s rings=%v", tt.theory, tt.hasRings)
		assert.False(t, got.BondMatch)
	}

	_, ok := FlagsFor(Theory("BOND"), true)
	assert.False(t, ok)
}

func pairGraphs() (*molecule.Graph, *molecule.Graph) {
	q := molecule.NewGraph("q")
	q.AddAtom("q1", "C")
	q.AddAtom("q2", "O")
	tg := molecule.NewGraph("t")
	tg.AddAtom("t1", "C")
	tg.AddAtom("t2", "O")
	return q, tg
}

func TestAtomMapping(t *testing.T) {
	q, tg := pairGraphs()
	m := NewAtomMapping(q, tg)
	assert.Same(t, q, m.Query())
	assert.Same(t, tg, m.Target())

	m.Put(q.Atoms[1], tg.Atoms[1])
	m.Put(q.Atoms[0], tg.Atoms[1])
	m.Put(nil, tg.Atoms[0])
	m.Put(q.Atoms[0], tg.Atoms[0])

	assert.Equal(t, 2, m.Count())
	assert.Equal(t, [][2]int{{1, 1}, {0, 0}}, m.Indices())
	assert.Equal(t, [][2]string{{"q2", "t2"}, {"q1", "t1"}}, m.IDPairs())
	assert.Equal(t, "q2->t2 q1->t1", m.String())

	got, ok := m.Lookup(q.Atoms[0])
	assert.True(t, ok)
	assert.Same(t, tg.Atoms[0], got)

	pairs := m.Pairs()
	pairs[0].Target = nil
	assert.NotNil(t, m.Pairs()[0].Target)

	var nilMapping *AtomMapping
	assert.Equal(t, 0, nilMapping.Count())
	assert.Nil(t, nilMapping.Pairs())
	assert.Nil(t, nilMapping.Indices())
}

func TestSolutions_Combination(t *testing.T) {
	raw := &RawSolution{QueryPosition: 2, TargetPosition: 1}
	assert.Equal(t, reaction.NewCombination(2, 1), raw.Combination())
	sol := &MCSSolution{ReactantIndex: 0, ProductIndex: 3}
	assert.Equal(t, "(0,3)", sol.Combination().String())
}

func TestFuncAdapters(t *testing.T) {
	var k Kernel = KernelFunc(func(_ context.Context, req KernelRequest) (*RawSolution, error) {
		return &RawSolution{QueryPosition: req.ReactantIndex, TargetPosition: req.ProductIndex}, nil
	})
	raw, err := k.Match(context.Background(), KernelRequest{ReactantIndex: 1, ProductIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, raw.TargetPosition)

	var f CycleFinder = CycleFinderFunc(func(g *molecule.Graph) (CycleResult, error) {
		return CycleResult{Count: g.AtomCount()}, nil
	})
	q, _ := pairGraphs()
	res, err := f.Find(q)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
}
