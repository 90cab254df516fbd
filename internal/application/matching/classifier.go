package matching

import (
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// Task is a classified job ready for the kernel.
type Task struct {
	Job            *Job
	Request        mapping.KernelRequest
	ReactantCycles int
	ProductCycles  int
}

// Classify counts the cycles of both graphs of job and derives the kernel
// request for theory.
//
// The second result is false when theory is unsupported; the job is then
// skipped without error.  A cycle finder failure is returned as an error.
func Classify(job *Job, theory mapping.Theory, finder mapping.CycleFinder, eductCount, productCount int) (Task, bool, error) {
	if !theory.IsValid() {
		return Task{}, false, nil
	}

	rc, err := finder.Find(job.Reactant)
	if err != nil {
		return Task{}, false, errors.Wrap(err, errors.ErrCodeCycleSearchFailed, "cycle search failed on reactant "+job.Reactant.ID).
			WithDetail("job=" + job.Key.String())
	}
	pc, err := finder.Find(job.Product)
	if err != nil {
		return Task{}, false, errors.Wrap(err, errors.ErrCodeCycleSearchFailed, "cycle search failed on product "+job.Product.ID).
			WithDetail("job=" + job.Key.String())
	}

	hasRings := rc.Count > 0 && pc.Count > 0
	flags, ok := mapping.FlagsFor(theory, hasRings)
	if !ok {
		return Task{}, false, nil
	}

	return Task{
		Job: job,
		Request: mapping.KernelRequest{
			Theory:        theory,
			Reactant:      job.Reactant,
			Product:       job.Product,
			ReactantIndex: job.Key.ReactantIndex,
			ProductIndex:  job.Key.ProductIndex,
			Flags:         flags,
			PerfectRings:  rc.Count == pc.Count,
			EductCount:    eductCount,
			ProductCount:  productCount,
		},
		ReactantCycles: rc.Count,
		ProductCycles:  pc.Count,
	}, true, nil
}
