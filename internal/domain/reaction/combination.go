// Package reaction models one chemical transformation as the matching engine
// sees it: indexed reactant and product graphs, per-graph modification flags
// and a reactant-by-product similarity matrix, plus the Combination keys that
// address a (reactant, product) pair.
package reaction

import (
	"fmt"
	"sort"
)

// Combination addresses reactant i and product j.  Combinations are ordered
// row-major: first by ReactantIndex, then by ProductIndex.
type Combination struct {
	ReactantIndex int
	ProductIndex  int
}

// NewCombination is a convenience constructor.
func NewCombination(i, j int) Combination {
	return Combination{ReactantIndex: i, ProductIndex: j}
}

// Compare returns -1, 0 or +1 as c sorts before, equal to or after o.
func (c Combination) Compare(o Combination) int {
	switch {
	case c.ReactantIndex < o.ReactantIndex:
		return -1
	case c.ReactantIndex > o.ReactantIndex:
		return 1
	case c.ProductIndex < o.ProductIndex:
		return -1
	case c.ProductIndex > o.ProductIndex:
		return 1
	default:
		return 0
	}
}

// Less reports whether c sorts before o.
func (c Combination) Less(o Combination) bool { return c.Compare(o) < 0 }

// Equal reports whether c and o address the same pair.
func (c Combination) Equal(o Combination) bool { return c == o }

// String renders the combination as "(i,j)".
func (c Combination) String() string {
	return fmt.Sprintf("(%d,%d)", c.ReactantIndex, c.ProductIndex)
}

// CombinationSet is an ordered set of Combinations.  The zero value is an
// empty set ready for use.  It is not safe for concurrent mutation.
type CombinationSet struct {
	items []Combination
}

// NewCombinationSet returns a set holding the given combinations.
func NewCombinationSet(cs ...Combination) *CombinationSet {
	s := &CombinationSet{}
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

func (s *CombinationSet) search(c Combination) int {
	return sort.Search(len(s.items), func(k int) bool { return !s.items[k].Less(c) })
}

// Add inserts c and reports whether it was absent.
func (s *CombinationSet) Add(c Combination) bool {
	k := s.search(c)
	if k < len(s.items) && s.items[k] == c {
		return false
	}
	s.items = append(s.items, Combination{})
	copy(s.items[k+1:], s.items[k:])
	s.items[k] = c
	return true
}

// Remove deletes c and reports whether it was present.
func (s *CombinationSet) Remove(c Combination) bool {
	k := s.search(c)
	if k >= len(s.items) || s.items[k] != c {
		return false
	}
	s.items = append(s.items[:k], s.items[k+1:]...)
	return true
}

// Contains reports whether c is a member.
func (s *CombinationSet) Contains(c Combination) bool {
	if s == nil {
		return false
	}
	k := s.search(c)
	return k < len(s.items) && s.items[k] == c
}

// Len returns the number of members.
func (s *CombinationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the members in ascending order.  The slice is a copy.
func (s *CombinationSet) Items() []Combination {
	if s == nil {
		return nil
	}
	return append([]Combination(nil), s.items...)
}
