// Package cycles counts the rings of a molecular graph.  The matching
// engine only needs the number of cycles on each side of a job; three
// strategies are offered with different cost profiles:
//
//   - All enumerates every simple cycle and gives up past a limit.
//   - SSSR returns the circuit rank E - V + C, the size of the smallest set
//     of smallest rings.
//   - Or runs a primary finder and falls back to a secondary one when the
//     primary reports the graph as intractable.
package cycles

import (
	stdliberrors "errors"
	"fmt"
	"strings"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// ---------------------------------------------------------------------------
// Sentinel Errors
// ---------------------------------------------------------------------------

// ErrIntractable is returned (wrapped) when enumeration exceeds its limit.
var ErrIntractable = stdliberrors.New("cycle enumeration is intractable")

// IsIntractable reports whether err signals an exceeded enumeration limit.
func IsIntractable(err error) bool {
	return stdliberrors.Is(err, ErrIntractable) || errors.IsCode(err, errors.ErrCodeCycleIntractable)
}

// DefaultLimit is the number of simple cycles All enumerates before giving up.
const DefaultLimit = 1024

// stepsPerCycle bounds the DFS work of All relative to its cycle limit so
// that dense fused systems fail fast instead of stalling.
const stepsPerCycle = 512

// ---------------------------------------------------------------------------
// All
// ---------------------------------------------------------------------------

// All enumerates the simple cycles of a graph.
type All struct {
	// Limit caps the number of cycles.  Zero means DefaultLimit.
	Limit int
}

var _ mapping.CycleFinder = All{}

func (a All) limit() int {
	if a.Limit <= 0 {
		return DefaultLimit
	}
	return a.Limit
}

// Find implements mapping.CycleFinder.
//
// Each cycle is rooted at its lowest-index atom and walked in both
// directions, so the raw count is halved.
func (a All) Find(g *molecule.Graph) (mapping.CycleResult, error) {
	n := g.AtomCount()
	limit := a.limit()
	maxSteps := limit * stepsPerCycle

	onPath := make([]bool, n)
	closed, steps := 0, 0

	var walk func(start, v, depth int) error
	walk = func(start, v, depth int) error {
		steps++
		if steps > maxSteps {
			return intractable(g, limit)
		}
		onPath[v] = true
		defer func() { onPath[v] = false }()
		for _, w := range g.Neighbors(v) {
			if w == start {
				if depth >= 2 {
					closed++
					if closed/2 > limit {
						return intractable(g, limit)
					}
				}
				continue
			}
			if w < start || onPath[w] {
				continue
			}
			if err := walk(start, w, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for s := 0; s < n; s++ {
		if g.Degree(s) < 2 {
			continue
		}
		if err := walk(s, s, 0); err != nil {
			return mapping.CycleResult{}, err
		}
	}
	return mapping.CycleResult{Count: closed / 2}, nil
}

func intractable(g *molecule.Graph, limit int) error {
	return errors.Wrap(ErrIntractable, errors.ErrCodeCycleIntractable,
		fmt.Sprintf("graph %s has more than %d simple cycles", g.ID, limit))
}

// ---------------------------------------------------------------------------
// SSSR
// ---------------------------------------------------------------------------

// SSSR returns the circuit rank of a graph.
type SSSR struct{}

var _ mapping.CycleFinder = SSSR{}

// Find implements mapping.CycleFinder.
func (SSSR) Find(g *molecule.Graph) (mapping.CycleResult, error) {
	if g == nil {
		return mapping.CycleResult{}, errors.New(errors.ErrCodeCycleSearchFailed, "graph is nil")
	}
	rank := g.BondCount() - g.AtomCount() + g.ConnectedComponents()
	if rank < 0 {
		rank = 0
	}
	return mapping.CycleResult{Count: rank}, nil
}

// ---------------------------------------------------------------------------
// Or
// ---------------------------------------------------------------------------

// Or runs Primary and, only when it reports intractability, Fallback.
// Other errors are returned unchanged.
type Or struct {
	Primary  mapping.CycleFinder
	Fallback mapping.CycleFinder
}

var _ mapping.CycleFinder = Or{}

// Find implements mapping.CycleFinder.
func (o Or) Find(g *molecule.Graph) (mapping.CycleResult, error) {
	res, err := o.Primary.Find(g)
	if err == nil || !IsIntractable(err) {
		return res, err
	}
	return o.Fallback.Find(g)
}

// ---------------------------------------------------------------------------
// Strategy
// ---------------------------------------------------------------------------

// Strategy names a cycle finder configuration.
type Strategy string

const (
	StrategyAll       Strategy = "all"
	StrategySSSR      Strategy = "sssr"
	StrategyAllOrSSSR Strategy = "all_or_sssr"
	// StrategyAllOrAll retries the same enumeration on failure, so it fails
	// exactly when StrategyAll does.
	StrategyAllOrAll Strategy = "all_or_all"
)

// New builds the finder for strategy.  limit applies to every "all" stage.
func New(strategy string, limit int) (mapping.CycleFinder, error) {
	all := All{Limit: limit}
	switch Strategy(strings.ToLower(strings.TrimSpace(strategy))) {
	case StrategyAll:
		return all, nil
	case StrategySSSR:
		return SSSR{}, nil
	case StrategyAllOrSSSR, "":
		return Or{Primary: all, Fallback: SSSR{}}, nil
	case StrategyAllOrAll:
		return Or{Primary: all, Fallback: all}, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidParam, "unknown cycle strategy %q", strategy).
			WithDetail("expected all, sssr, all_or_sssr or all_or_all")
	}
}
