package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

func graph(id string, ids ...string) *molecule.Graph {
	g := molecule.NewGraph(id)
	for _, a := range ids {
		g.AddAtom(a, "C")
	}
	return g
}

func TestSimilarityMatrix(t *testing.T) {
	m := NewSimilarityMatrix(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.False(t, m.IsKnown(1, 2))
	assert.Equal(t, Unknown, m.Value(1, 2))

	require.NoError(t, m.Set(1, 2, 0.75))
	assert.True(t, m.IsKnown(1, 2))
	assert.Equal(t, 0.75, m.Value(1, 2))

	err := m.Set(2, 0, 1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionIndexOutOfRange))
	assert.Equal(t, Unknown, m.Value(-1, 0))

	m.Resize(3, 3)
	assert.Equal(t, 0.75, m.Value(1, 2))
	assert.False(t, m.IsKnown(2, 2))

	neg := NewSimilarityMatrix(-1, 4)
	assert.Equal(t, 0, neg.Rows())
}

func TestContainer_SourceContract(t *testing.T) {
	water := graph("water", "o1")
	acid := graph("acid", "c1", "c2")
	c := NewContainer("rxn")

	assert.Equal(t, 0, c.AddEduct(acid, true))
	assert.Equal(t, 1, c.AddEduct(water, false))
	assert.Equal(t, 0, c.AddProduct(acid, false))

	assert.Equal(t, 2, c.EductCount())
	assert.Equal(t, 1, c.ProductCount())
	assert.Same(t, acid, c.Educt(0))
	assert.Same(t, acid, c.Product(0))
	assert.Nil(t, c.Educt(5))
	assert.Nil(t, c.Product(-1))
	assert.True(t, c.IsEductModified(0))
	assert.False(t, c.IsEductModified(1))
	assert.False(t, c.IsEductModified(9))

	_, known := c.Similarity(0, 0)
	assert.False(t, known)
	require.NoError(t, c.SetSimilarity(1, 0, 0.2))
	v, known := c.Similarity(1, 0)
	assert.True(t, known)
	assert.Equal(t, 0.2, v)

	require.NoError(t, c.SetProductModified(0, true))
	assert.True(t, c.IsProductModified(0))
	assert.Error(t, c.SetProductModified(4, true))
	require.NoError(t, c.SetEductModified(1, true))
	assert.True(t, c.IsEductModified(1))
	assert.Error(t, c.SetEductModified(-1, true))
}

func TestGraphs_DistinctInstances(t *testing.T) {
	a := graph("a", "x")
	b := graph("b", "y")
	c := NewContainer("rxn")
	c.AddEduct(a, true)
	c.AddEduct(a, true)
	c.AddProduct(b, true)
	c.AddProduct(a, true)

	got := Graphs(c)
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
}

func TestIDAllocator(t *testing.T) {
	g := graph("g", "a1", "", "a3", "")
	alloc := NewIDAllocator("a")
	alloc.Observe(g)

	assert.Equal(t, 2, alloc.Assign(g))
	assert.Equal(t, "a2", g.Atoms[1].ID)
	assert.Equal(t, "a4", g.Atoms[3].ID)
	assert.Equal(t, "a5", alloc.Next())

	// Independent allocators do not share state.
	assert.Equal(t, "a1", NewIDAllocator("a").Next())
}

func TestValidateIdentifiers(t *testing.T) {
	good := graph("good", "a1", "a2")
	c := NewContainer("rxn")
	c.AddEduct(good, true)
	c.AddProduct(good, true)
	assert.NoError(t, ValidateIdentifiers(c))

	bad := graph("bad", "b1", "", "b1")
	c.AddProduct(bad, true)
	err := ValidateIdentifiers(c)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReactionIdentifiers))

	problems := IdentifierProblems(c)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "1 atom(s) without identifier")
	assert.Contains(t, problems[1], "b1")
}
