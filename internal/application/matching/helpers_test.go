package matching

import (
	"sync"
	"time"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/testutil"
)

// twoByTwo builds a reaction of two distinct reactants and two distinct
// products with unknown similarities, so every pair is a candidate.
func twoByTwo() *reaction.Container {
	c := reaction.NewContainer("rxn")
	c.AddEduct(testutil.Chain("r0", "C", "C", "O"), true)
	c.AddEduct(testutil.Chain("r1", "O", "H"), false)
	c.AddProduct(testutil.Chain("p0", "C", "C", "O", "C"), true)
	c.AddProduct(testutil.Chain("p1", "H", "O"), false)
	return c
}

// repeated builds 2 A -> 2 B over shared instances.
func repeated() (*reaction.Container, *molecule.Graph, *molecule.Graph) {
	a := testutil.Chain("a", "C", "O")
	b := testutil.Chain("b", "C", "O", "O")
	c := reaction.NewContainer("rxn")
	c.AddEduct(a, true)
	c.AddEduct(a, true)
	c.AddProduct(b, true)
	c.AddProduct(b, true)
	return c, a, b
}

type recordedJob struct {
	theory, outcome string
}

type fakeRecorder struct {
	mu   sync.Mutex
	jobs []recordedJob
	runs []RunStats
}

func (r *fakeRecorder) RecordJob(theory, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, recordedJob{theory, outcome})
}

func (r *fakeRecorder) RecordRun(stats RunStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, stats)
}

func (r *fakeRecorder) outcomes(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, j := range r.jobs {
		if j.outcome == outcome {
			n++
		}
	}
	return n
}

func combinationsOf(solutions []*mapping.MCSSolution) []reaction.Combination {
	out := make([]reaction.Combination, len(solutions))
	for k, s := range solutions {
		out[k] = s.Combination()
	}
	return out
}
