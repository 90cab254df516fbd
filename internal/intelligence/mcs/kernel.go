// Package mcs is the baseline maximum-common-subgraph kernel.  It grows
// connected common fragments by backtracking (McGregor style) from every
// compatible seed pair, keeps the largest, then repeats on the atoms left
// over until no further fragment can be placed.
//
// The search is bounded by a step budget.  When the budget runs out the best
// mapping found so far is returned, which keeps the result deterministic for
// a given budget.
package mcs

import (
	"context"
	"sort"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// DefaultStepLimit is the per-job search budget.
const DefaultStepLimit = 200000

// ctxCheckInterval is how many steps pass between context checks.
const ctxCheckInterval = 1024

// Kernel implements mapping.Kernel.  The zero value is usable.
type Kernel struct {
	StepLimit int
}

var _ mapping.Kernel = (*Kernel)(nil)

// NewKernel returns a kernel with the given step budget; a non-positive
// value selects DefaultStepLimit.
func NewKernel(stepLimit int) *Kernel {
	return &Kernel{StepLimit: stepLimit}
}

func (k *Kernel) stepLimit() int {
	if k == nil || k.StepLimit <= 0 {
		return DefaultStepLimit
	}
	return k.StepLimit
}

// Match implements mapping.Kernel.  The request graphs are cloned; the
// returned RawSolution refers to the clones.
func (k *Kernel) Match(ctx context.Context, req mapping.KernelRequest) (*mapping.RawSolution, error) {
	if req.Reactant == nil || req.Product == nil {
		return nil, errors.Newf(errors.ErrCodeKernelFailed, "job (%d,%d) is missing a graph", req.ReactantIndex, req.ProductIndex)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKernelFailed, "kernel not started")
	}
	query := req.Reactant.Clone()
	target := req.Product.Clone()

	// Search the smaller graph into the larger one.
	a, b, swapped := query, target, false
	if a.AtomCount() > b.AtomCount() {
		a, b, swapped = b, a, true
	}

	s := newSearch(ctx, a, b, req.Flags, req.PerfectRings, k.stepLimit())
	pairs, err := s.run()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKernelFailed, "kernel interrupted").
			WithDetail(req.Reactant.ID + " vs " + req.Product.ID)
	}

	if swapped {
		for n := range pairs {
			pairs[n][0], pairs[n][1] = pairs[n][1], pairs[n][0]
		}
	}
	sort.Slice(pairs, func(x, y int) bool { return pairs[x][0] < pairs[y][0] })

	m := mapping.NewAtomMapping(query, target)
	for _, p := range pairs {
		m.Put(query.Atoms[p[0]], target.Atoms[p[1]])
	}
	return &mapping.RawSolution{
		QueryPosition:  req.ReactantIndex,
		TargetPosition: req.ProductIndex,
		Query:          query,
		Target:         target,
		Mapping:        m,
	}, nil
}
