package cycles

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// ring builds a cycle of n carbons, optionally with a pendant oxygen on
// atom 0.
func ring(t *testing.T, n int, pendant bool) *molecule.Graph {
	t.Helper()
	g := molecule.NewGraph(fmt.Sprintf("ring%d", n))
	for i := 0; i < n; i++ {
		g.AddAtom(fmt.Sprintf("c%d", i), "C")
	}
	for i := 0; i < n; i++ {
		_, err := g.AddBond(i, (i+1)%n, molecule.BondSingle)
		require.NoError(t, err)
	}
	if pendant {
		o := g.AddAtom("o", "O")
		_, err := g.AddBond(0, o.Index, molecule.BondSingle)
		require.NoError(t, err)
	}
	return g
}

// naphthalene builds two fused six-rings sharing bond 0-5.
func naphthalene(t *testing.T) *molecule.Graph {
	t.Helper()
	g := molecule.NewGraph("naphthalene")
	for i := 0; i < 10; i++ {
		g.AddAtom(fmt.Sprintf("c%d", i), "C")
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}, {5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 0}}
	for _, e := range edges {
		_, err := g.AddBond(e[0], e[1], molecule.BondAromatic)
		require.NoError(t, err)
	}
	return g
}

func chain(t *testing.T, n int) *molecule.Graph {
	t.Helper()
	g := molecule.NewGraph("chain")
	for i := 0; i < n; i++ {
		g.AddAtom(fmt.Sprintf("c%d", i), "C")
		if i > 0 {
			_, err := g.AddBond(i-1, i, molecule.BondSingle)
			require.NoError(t, err)
		}
	}
	return g
}

// k5 builds the complete graph on five atoms (37 simple cycles).
func k5(t *testing.T) *molecule.Graph {
	t.Helper()
	g := molecule.NewGraph("k5")
	for i := 0; i < 5; i++ {
		g.AddAtom(fmt.Sprintf("x%d", i), "C")
	}
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			_, err := g.AddBond(i, j, molecule.BondSingle)
			require.NoError(t, err)
		}
	}
	return g
}

func TestAll_Counts(t *testing.T) {
	tests := []struct {
		name string
		g    *molecule.Graph
		want int
	}{
		{"empty", molecule.NewGraph("empty"), 0},
		{"chain", chain(t, 5), 0},
		{"triangle", ring(t, 3, false), 1},
		{"phenol-like", ring(t, 6, true), 1},
		{"naphthalene", naphthalene(t), 3},
		{"k5", k5(t), 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := All{}.Find(tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Count)
		})
	}
}

func TestAll_Intractable(t *testing.T) {
	_, err := All{Limit: 2}.Find(naphthalene(t))
	require.Error(t, err)
	assert.True(t, IsIntractable(err))
	assert.True(t, errors.IsCode(err, errors.ErrCodeCycleIntractable))
}

func TestSSSR_CircuitRank(t *testing.T) {
	tests := []struct {
		name string
		g    *molecule.Graph
		want int
	}{
		{"chain", chain(t, 4), 0},
		{"benzene", ring(t, 6, false), 1},
		{"naphthalene", naphthalene(t), 2},
		{"k5", k5(t), 6},
	}
	for _, tt := range tests {
		res, err := SSSR{}.Find(tt.g)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Count, tt.name)
	}

	_, err := SSSR{}.Find(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCycleSearchFailed))
}

func TestOr_FallsBackOnlyOnIntractable(t *testing.T) {
	g := naphthalene(t)

	res, err := Or{Primary: All{Limit: 2}, Fallback: SSSR{}}.Find(g)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	res, err = Or{Primary: All{}, Fallback: SSSR{}}.Find(g)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	boom := errors.New(errors.ErrCodeCycleSearchFailed, "boom")
	fallbackCalled := false
	_, err = Or{
		Primary: mapping.CycleFinderFunc(func(*molecule.Graph) (mapping.CycleResult, error) {
			return mapping.CycleResult{}, boom
		}),
		Fallback: mapping.CycleFinderFunc(func(*molecule.Graph) (mapping.CycleResult, error) {
			fallbackCalled = true
			return mapping.CycleResult{}, nil
		}),
	}.Find(g)
	assert.ErrorIs(t, err, boom)
	assert.False(t, fallbackCalled)

	_, err = Or{Primary: All{Limit: 2}, Fallback: All{Limit: 2}}.Find(g)
	assert.True(t, IsIntractable(err))
}

func TestNew(t *testing.T) {
	tests := []struct {
		strategy string
		want     mapping.CycleFinder
	}{
		{"all", All{Limit: 8}},
		{"SSSR", SSSR{}},
		{"all_or_sssr", Or{Primary: All{Limit: 8}, Fallback: SSSR{}}},
		{"", Or{Primary: All{Limit: 8}, Fallback: SSSR{}}},
		{"all_or_all", Or{Primary: All{Limit: 8}, Fallback: All{Limit: 8}}},
	}
	for _, tt := range tests {
		got, err := New(tt.strategy, 8)
		require.NoError(t, err, tt.strategy)
		assert.Equal(t, tt.want, got, tt.strategy)
	}

	_, err := New("relevant", 8)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRingMembership(t *testing.T) {
	g := ring(t, 6, true)
	m := RingMembership(g)
	for i := 0; i < 6; i++ {
		assert.True(t, m.AtomInRing(i), "atom %d", i)
		assert.True(t, m.BondInRing(i), "bond %d", i)
	}
	assert.False(t, m.AtomInRing(6))
	assert.False(t, m.BondInRing(6))
	assert.False(t, m.AtomInRing(99))

	m = RingMembership(chain(t, 3))
	assert.Equal(t, []bool{false, false, false}, m.Atoms)
	assert.Equal(t, []bool{false, false}, m.Bonds)

	m = RingMembership(naphthalene(t))
	for k := range m.Bonds {
		assert.True(t, m.BondInRing(k))
	}
}
