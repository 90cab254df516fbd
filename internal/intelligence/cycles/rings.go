package cycles

import "github.com/turtacn/ReactionMapper/internal/domain/molecule"

// Membership records which atoms and bonds lie on at least one cycle.
type Membership struct {
	Atoms []bool
	Bonds []bool
}

// AtomInRing reports whether atom i is a ring atom.
func (m Membership) AtomInRing(i int) bool { return i >= 0 && i < len(m.Atoms) && m.Atoms[i] }

// BondInRing reports whether bond k is a ring bond.
func (m Membership) BondInRing(k int) bool { return k >= 0 && k < len(m.Bonds) && m.Bonds[k] }

// RingMembership classifies every bond of g as ring or chain.  A bond is a
// ring bond exactly when it is not a bridge; an atom is a ring atom when it
// touches a ring bond.
func RingMembership(g *molecule.Graph) Membership {
	n, e := g.AtomCount(), g.BondCount()
	m := Membership{Atoms: make([]bool, n), Bonds: make([]bool, e)}
	for k := range m.Bonds {
		m.Bonds[k] = true
	}

	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0

	var dfs func(v, parentBond int)
	dfs = func(v, parentBond int) {
		disc[v] = timer
		low[v] = timer
		timer++
		for _, k := range g.IncidentBonds(v) {
			if k == parentBond {
				continue
			}
			w := g.Bonds[k].Other(v)
			if disc[w] == -1 {
				dfs(w, k)
				if low[w] < low[v] {
					low[v] = low[w]
				}
				if low[w] > disc[v] {
					m.Bonds[k] = false
				}
			} else if disc[w] < low[v] {
				low[v] = disc[w]
			}
		}
	}
	for v := 0; v < n; v++ {
		if disc[v] == -1 {
			dfs(v, -1)
		}
	}

	for k, ring := range m.Bonds {
		if ring {
			b := g.Bonds[k]
			m.Atoms[b.Begin] = true
			m.Atoms[b.End] = true
		}
	}
	return m
}
