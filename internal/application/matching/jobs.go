package matching

import (
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
)

// Job is one unit of kernel work.  Key is the representative pair; the
// duplicates are pairs over the same two graph instances whose result is
// copied from Key's.
type Job struct {
	Key      reaction.Combination
	Reactant *molecule.Graph
	Product  *molecule.Graph

	duplicates reaction.CombinationSet
}

// Duplicates returns the absorbed pairs in Combination order, Key excluded.
func (j *Job) Duplicates() []reaction.Combination { return j.duplicates.Items() }

// Combinations returns Key followed by the duplicates.
func (j *Job) Combinations() []reaction.Combination {
	return append([]reaction.Combination{j.Key}, j.duplicates.Items()...)
}

// Size returns how many pairs the job answers.
func (j *Job) Size() int { return 1 + j.duplicates.Len() }

// sameStructure reports whether the pair over (r, p) can reuse j's result:
// identical instances, and identical atom counts at comparison time.
func (j *Job) sameStructure(r, p *molecule.Graph) bool {
	return j.Reactant == r && j.Product == p &&
		j.Reactant.AtomCount() == r.AtomCount() &&
		j.Product.AtomCount() == p.AtomCount()
}

type jobSignature struct {
	reactant      *molecule.Graph
	product       *molecule.Graph
	reactantAtoms int
	productAtoms  int
}

// JobTable holds the jobs of one run keyed by representative Combination.
// It is owned by a single goroutine.
type JobTable struct {
	jobs map[reaction.Combination]*Job
	keys reaction.CombinationSet
}

func newJobTable() *JobTable {
	return &JobTable{jobs: make(map[reaction.Combination]*Job)}
}

// Len returns the number of jobs.
func (t *JobTable) Len() int { return len(t.jobs) }

// Get returns the job keyed by c.
func (t *JobTable) Get(c reaction.Combination) (*Job, bool) {
	j, ok := t.jobs[c]
	return j, ok
}

// Jobs returns the jobs in key order.
func (t *JobTable) Jobs() []*Job {
	out := make([]*Job, 0, len(t.jobs))
	for _, k := range t.keys.Items() {
		out = append(out, t.jobs[k])
	}
	return out
}

// Remove deletes the job keyed by c.
func (t *JobTable) Remove(c reaction.Combination) {
	if _, ok := t.jobs[c]; ok {
		delete(t.jobs, c)
		t.keys.Remove(c)
	}
}

// Absorbed returns the total number of pairs the table answers.
func (t *JobTable) Absorbed() int {
	n := 0
	for _, j := range t.jobs {
		n += j.Size()
	}
	return n
}

func (t *JobTable) add(c reaction.Combination, r, p *molecule.Graph) *Job {
	j := &Job{Key: c, Reactant: r, Product: p}
	t.jobs[c] = j
	t.keys.Add(c)
	return j
}

// BuildJobs folds candidates into jobs.  Candidates are visited in
// Combination order; the first pair seen over a given (reactant, product)
// instance pair becomes the representative.
//
// The default linear mode scans the existing jobs for each candidate.  The
// indexed mode looks the instance pair up in a hash index and yields the
// same table.
func BuildJobs(src reaction.Source, candidates *reaction.CombinationSet, indexed bool) *JobTable {
	table := newJobTable()
	var index map[jobSignature]*Job
	if indexed {
		index = make(map[jobSignature]*Job)
	}

	for _, c := range candidates.Items() {
		r := src.Educt(c.ReactantIndex)
		p := src.Product(c.ProductIndex)

		var owner *Job
		if indexed {
			owner = index[jobSignature{r, p, r.AtomCount(), p.AtomCount()}]
		} else {
			for _, k := range table.keys.Items() {
				if j := table.jobs[k]; j.sameStructure(r, p) {
					owner = j
					break
				}
			}
		}

		if owner != nil {
			owner.duplicates.Add(c)
			continue
		}
		j := table.add(c, r, p)
		if indexed {
			index[jobSignature{r, p, r.AtomCount(), p.AtomCount()}] = j
		}
	}
	return table
}
