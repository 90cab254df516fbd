package mcs

import (
	"context"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/intelligence/cycles"
)

// search maps atoms of a (the smaller graph) onto atoms of b.
type search struct {
	ctx context.Context
	a   *molecule.Graph
	b   *molecule.Graph

	flags   mapping.MatchFlags
	perfect bool
	ringsA  cycles.Membership
	ringsB  cycles.Membership

	compat [][]bool
	symA   []int
	symB   []int
	nSym   int

	mapAB    []int
	mapBA    []int
	roundOf  []int
	excluded []bool
	root     int
	round    int

	cur  [][2]int
	best [][2]int

	steps     int
	limit     int
	exhausted bool
	err       error

	countA []int
	countB []int
}

func newSearch(ctx context.Context, a, b *molecule.Graph, flags mapping.MatchFlags, perfect bool, limit int) *search {
	s := &search{
		ctx:      ctx,
		a:        a,
		b:        b,
		flags:    flags,
		perfect:  perfect,
		limit:    limit,
		mapAB:    filled(a.AtomCount(), -1),
		mapBA:    filled(b.AtomCount(), -1),
		roundOf:  filled(a.AtomCount(), -1),
		excluded: make([]bool, a.AtomCount()),
	}
	if flags.RingMatch {
		s.ringsA = cycles.RingMembership(a)
		s.ringsB = cycles.RingMembership(b)
	}
	s.indexSymbols()
	s.buildCompat()
	return s
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func (s *search) indexSymbols() {
	ids := make(map[string]int)
	lookup := func(sym string) int {
		id, ok := ids[sym]
		if !ok {
			id = len(ids)
			ids[sym] = id
		}
		return id
	}
	s.symA = make([]int, s.a.AtomCount())
	for i, atom := range s.a.Atoms {
		s.symA[i] = lookup(atom.Symbol)
	}
	s.symB = make([]int, s.b.AtomCount())
	for j, atom := range s.b.Atoms {
		s.symB[j] = lookup(atom.Symbol)
	}
	s.nSym = len(ids)
	s.countA = make([]int, s.nSym)
	s.countB = make([]int, s.nSym)
}

func (s *search) buildCompat() {
	s.compat = make([][]bool, s.a.AtomCount())
	for i := range s.compat {
		s.compat[i] = make([]bool, s.b.AtomCount())
		for j := range s.compat[i] {
			s.compat[i][j] = s.atomsCompatible(i, j)
		}
	}
}

func (s *search) atomsCompatible(i, j int) bool {
	x, y := s.a.Atoms[i], s.b.Atoms[j]
	if x.Symbol != y.Symbol {
		return false
	}
	if s.flags.AtomTypeMatch && (x.Aromatic != y.Aromatic || x.Charge != y.Charge) {
		return false
	}
	if s.flags.RingMatch && s.ringsA.AtomInRing(i) != s.ringsB.AtomInRing(j) {
		return false
	}
	return true
}

func (s *search) bondsCompatible(ka, kb int) bool {
	x, y := s.a.Bonds[ka], s.b.Bonds[kb]
	if s.flags.BondMatch && x.Order != y.Order {
		return false
	}
	if s.flags.RingMatch && s.perfect && s.ringsA.BondInRing(ka) != s.ringsB.BondInRing(kb) {
		return false
	}
	return true
}

// run places fragments round by round and returns every (a, b) pair.
func (s *search) run() ([][2]int, error) {
	var all [][2]int
	for {
		s.best = s.best[:0]
		s.placeFragment()
		if s.err != nil {
			return nil, s.err
		}
		if len(s.best) == 0 {
			return all, nil
		}
		for _, p := range s.best {
			s.mapAB[p[0]] = p[1]
			s.mapBA[p[1]] = p[0]
			s.roundOf[p[0]] = s.round
		}
		all = append(all, s.best...)
		s.round++
		if s.exhausted {
			return all, nil
		}
	}
}

// placeFragment searches the largest connected fragment among the atoms
// left free by earlier rounds.
func (s *search) placeFragment() {
	for i := range s.excluded {
		s.excluded[i] = false
	}
	for root := 0; root < s.a.AtomCount(); root++ {
		if s.mapAB[root] >= 0 {
			continue
		}
		s.root = root
		for j := 0; j < s.b.AtomCount(); j++ {
			if s.mapBA[j] >= 0 || !s.compat[root][j] {
				continue
			}
			s.assign(root, j)
			s.extend()
			s.unassign(root, j)
			if s.stop() || len(s.best) == s.freeBound() {
				return
			}
		}
	}
}

func (s *search) assign(i, j int) {
	s.mapAB[i] = j
	s.mapBA[j] = i
	s.roundOf[i] = s.round
	s.cur = append(s.cur, [2]int{i, j})
}

func (s *search) unassign(i, j int) {
	s.mapAB[i] = -1
	s.mapBA[j] = -1
	s.roundOf[i] = -1
	s.cur = s.cur[:len(s.cur)-1]
}

func (s *search) stop() bool {
	return s.exhausted || s.err != nil
}

func (s *search) tick() bool {
	s.steps++
	if s.steps > s.limit {
		s.exhausted = true
		return false
	}
	if s.steps%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}
	return true
}

func (s *search) extend() {
	if !s.tick() {
		return
	}
	if len(s.cur) > len(s.best) {
		s.best = append(s.best[:0], s.cur...)
	}
	if len(s.cur)+s.bound() <= len(s.best) {
		return
	}

	q := s.frontier()
	if q < 0 {
		return
	}
	for j := 0; j < s.b.AtomCount(); j++ {
		if !s.candidate(q, j) {
			continue
		}
		s.assign(q, j)
		s.extend()
		s.unassign(q, j)
		if s.stop() {
			return
		}
	}

	s.excluded[q] = true
	s.extend()
	s.excluded[q] = false
}

// eligible reports whether a-atom i may still join the current fragment.
func (s *search) eligible(i int) bool {
	return i > s.root && s.mapAB[i] < 0 && !s.excluded[i]
}

// frontier returns the lowest eligible a-atom bonded to the fragment, or -1.
func (s *search) frontier() int {
	for i := 0; i < s.a.AtomCount(); i++ {
		if !s.eligible(i) {
			continue
		}
		for _, n := range s.a.Neighbors(i) {
			if s.roundOf[n] == s.round {
				return i
			}
		}
	}
	return -1
}

// candidate reports whether mapping q onto j keeps every bond between q and
// the fragment present and compatible in b.
func (s *search) candidate(q, j int) bool {
	if s.mapBA[j] >= 0 || !s.compat[q][j] {
		return false
	}
	linked := false
	for _, ka := range s.a.IncidentBonds(q) {
		n := s.a.Bonds[ka].Other(q)
		if s.roundOf[n] != s.round {
			continue
		}
		kb := s.b.BondIndex(j, s.mapAB[n])
		if kb < 0 || !s.bondsCompatible(ka, kb) {
			return false
		}
		linked = true
	}
	return linked
}

// bound is an upper limit on how many more atoms the fragment can gain:
// per element, the lesser of the eligible a-atoms and the free b-atoms.
func (s *search) bound() int {
	for k := range s.countA {
		s.countA[k] = 0
		s.countB[k] = 0
	}
	for i := range s.a.Atoms {
		if s.eligible(i) {
			s.countA[s.symA[i]]++
		}
	}
	for j := range s.b.Atoms {
		if s.mapBA[j] < 0 {
			s.countB[s.symB[j]]++
		}
	}
	total := 0
	for k := range s.countA {
		if s.countA[k] < s.countB[k] {
			total += s.countA[k]
		} else {
			total += s.countB[k]
		}
	}
	return total
}

// freeBound is the largest fragment any round could still place.
func (s *search) freeBound() int {
	freeA, freeB := 0, 0
	for _, j := range s.mapAB {
		if j < 0 {
			freeA++
		}
	}
	for _, i := range s.mapBA {
		if i < 0 {
			freeB++
		}
	}
	if freeA < freeB {
		return freeA
	}
	return freeB
}
