package mapping

import (
	"context"

	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
)

// KernelRequest carries one job to the isomorphism kernel.
type KernelRequest struct {
	Theory Theory

	Reactant      *molecule.Graph
	Product       *molecule.Graph
	ReactantIndex int
	ProductIndex  int

	Flags MatchFlags

	// PerfectRings is set when both graphs hold the same number of cycles.
	PerfectRings bool

	// EductCount and ProductCount are the side sizes of the reaction.
	EductCount   int
	ProductCount int
}

// Kernel computes a maximum common subgraph correspondence for one job.
//
// Implementations must treat the graphs in the request as read-only, must
// echo ReactantIndex and ProductIndex as QueryPosition and TargetPosition,
// and should return promptly once ctx is done.
type Kernel interface {
	Match(ctx context.Context, req KernelRequest) (*RawSolution, error)
}

// KernelFunc adapts a function to Kernel.
type KernelFunc func(ctx context.Context, req KernelRequest) (*RawSolution, error)

// Match implements Kernel.
func (f KernelFunc) Match(ctx context.Context, req KernelRequest) (*RawSolution, error) {
	return f(ctx, req)
}

// CycleResult summarises the cycles found in a graph.
type CycleResult struct {
	Count int
}

// CycleFinder counts the cycles of a graph.  Implementations must be safe
// for concurrent use.
type CycleFinder interface {
	Find(g *molecule.Graph) (CycleResult, error)
}

// CycleFinderFunc adapts a function to CycleFinder.
type CycleFinderFunc func(g *molecule.Graph) (CycleResult, error)

// Find implements CycleFinder.
func (f CycleFinderFunc) Find(g *molecule.Graph) (CycleResult, error) { return f(g) }
