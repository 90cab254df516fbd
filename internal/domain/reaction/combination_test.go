package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombination_Ordering(t *testing.T) {
	a := NewCombination(0, 1)
	b := NewCombination(1, 0)
	c := NewCombination(1, 2)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, b.Compare(NewCombination(1, 0)))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(b))
	assert.True(t, a.Equal(NewCombination(0, 1)))
	assert.Equal(t, "(1,2)", c.String())
}

func TestCombinationSet_IteratesRowMajor(t *testing.T) {
	s := NewCombinationSet(
		NewCombination(1, 1),
		NewCombination(0, 2),
		NewCombination(1, 0),
		NewCombination(0, 0),
	)
	assert.Equal(t, []Combination{{0, 0}, {0, 2}, {1, 0}, {1, 1}}, s.Items())
	assert.Equal(t, 4, s.Len())
}

func TestCombinationSet_AddRemoveContains(t *testing.T) {
	var s CombinationSet
	assert.True(t, s.Add(NewCombination(2, 3)))
	assert.False(t, s.Add(NewCombination(2, 3)))
	assert.True(t, s.Contains(NewCombination(2, 3)))
	assert.False(t, s.Contains(NewCombination(3, 2)))

	assert.True(t, s.Remove(NewCombination(2, 3)))
	assert.False(t, s.Remove(NewCombination(2, 3)))
	assert.Equal(t, 0, s.Len())
}

func TestCombinationSet_ItemsIsCopy(t *testing.T) {
	s := NewCombinationSet(NewCombination(0, 0))
	items := s.Items()
	items[0] = NewCombination(9, 9)
	assert.True(t, s.Contains(NewCombination(0, 0)))
}

func TestCombinationSet_Nil(t *testing.T) {
	var s *CombinationSet
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Items())
	assert.False(t, s.Contains(NewCombination(0, 0)))
}
