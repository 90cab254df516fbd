package mapping

import (
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
)

// RawSolution is the kernel output for one job.  Query and Target may be
// working copies rather than the reaction's own instances; the atoms in
// Mapping belong to Query and Target.
type RawSolution struct {
	QueryPosition  int
	TargetPosition int
	Query          *molecule.Graph
	Target         *molecule.Graph
	Mapping        *AtomMapping
}

// Combination returns the (reactant, product) key the solution answers.
func (r *RawSolution) Combination() reaction.Combination {
	return reaction.NewCombination(r.QueryPosition, r.TargetPosition)
}

// MCSSolution is a mapping expressed against the reaction's original graph
// instances at ReactantIndex and ProductIndex.
type MCSSolution struct {
	ReactantIndex int
	ProductIndex  int
	Reactant      *molecule.Graph
	Product       *molecule.Graph
	Mapping       *AtomMapping
}

// Combination returns the (reactant, product) key of the solution.
func (s *MCSSolution) Combination() reaction.Combination {
	return reaction.NewCombination(s.ReactantIndex, s.ProductIndex)
}
