package reaction

import (
	"fmt"
	"strings"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// IDAllocator hands out atom identifiers that do not collide with any
// identifier already observed.  One allocator serves one reaction; there is
// no process-wide counter.
type IDAllocator struct {
	prefix string
	next   int
	used   map[string]struct{}
}

// NewIDAllocator returns an allocator producing "<prefix><n>" identifiers,
// n starting at 1.
func NewIDAllocator(prefix string) *IDAllocator {
	return &IDAllocator{prefix: prefix, next: 1, used: make(map[string]struct{})}
}

// Observe reserves every non-empty identifier of g.
func (a *IDAllocator) Observe(g *molecule.Graph) {
	for _, atom := range g.Atoms {
		if atom.ID != "" {
			a.used[atom.ID] = struct{}{}
		}
	}
}

// Next returns a fresh identifier and reserves it.
func (a *IDAllocator) Next() string {
	for {
		id := fmt.Sprintf("%s%d", a.prefix, a.next)
		a.next++
		if _, taken := a.used[id]; !taken {
			a.used[id] = struct{}{}
			return id
		}
	}
}

// Assign gives every atom of g with an empty identifier a fresh one and
// returns how many were assigned.
func (a *IDAllocator) Assign(g *molecule.Graph) int {
	n := 0
	for _, atom := range g.Atoms {
		if atom.ID == "" {
			atom.ID = a.Next()
			n++
		}
	}
	return n
}

// IdentifierProblems lists every graph whose atoms lack an identifier or
// repeat one.  Each graph instance is inspected once.
func IdentifierProblems(src Source) []string {
	var problems []string
	for _, g := range Graphs(src) {
		missing := 0
		counts := make(map[string]int, len(g.Atoms))
		var repeated []string
		for _, atom := range g.Atoms {
			if atom.ID == "" {
				missing++
				continue
			}
			counts[atom.ID]++
			if counts[atom.ID] == 2 {
				repeated = append(repeated, atom.ID)
			}
		}
		if missing > 0 {
			problems = append(problems, fmt.Sprintf("graph %s: %d atom(s) without identifier", g.ID, missing))
		}
		if len(repeated) > 0 {
			problems = append(problems, fmt.Sprintf("graph %s: repeated identifier(s) %s", g.ID, strings.Join(repeated, ",")))
		}
	}
	return problems
}

// ValidateIdentifiers checks that every atom of every graph carries a
// non-empty identifier unique within its graph.  Replication looks atoms up
// by identifier, so a reaction failing this check loses correspondences.
func ValidateIdentifiers(src Source) error {
	problems := IdentifierProblems(src)
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeReactionIdentifiers, "atom identifiers are missing or repeated").
		WithDetail(strings.Join(problems, "; "))
}
