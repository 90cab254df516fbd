package matching

import (
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
)

// Replicate turns raw kernel solutions into solutions over the reaction's
// original graphs, one per pair each job absorbed.
//
// Atoms are matched by identifier, so a kernel working on copies is fine.
// A pair whose identifier is empty, unknown or repeated in the original graph
// is dropped with a warning; the second result counts dropped pairs.  Every
// job is removed from table as it is served; jobs left without a solution are
// logged and removed at the end, leaving table empty.
func Replicate(src reaction.Source, table *JobTable, raws []*mapping.RawSolution, log logging.Logger) ([]*mapping.MCSSolution, int) {
	solutions := make([]*mapping.MCSSolution, 0, table.Absorbed())
	dropped := 0

	for _, raw := range raws {
		key := raw.Combination()
		job, ok := table.Get(key)
		if !ok {
			log.Warn("solution does not belong to any pending job", logging.Stringer("combination", key))
			continue
		}

		for _, c := range job.Combinations() {
			reactant := src.Educt(c.ReactantIndex)
			product := src.Product(c.ProductIndex)
			if reactant == nil || product == nil {
				log.Warn("pair no longer resolves to graphs", logging.Stringer("combination", c))
				continue
			}

			m := mapping.NewAtomMapping(reactant, product)
			for _, pair := range raw.Mapping.Pairs() {
				q, err := reactant.AtomByID(pair.Query.ID)
				if err != nil {
					dropped++
					log.Warn("reactant atom lookup failed; pair dropped",
						logging.Stringer("combination", c), logging.String("atom_id", pair.Query.ID), logging.Err(err))
					continue
				}
				t, err := product.AtomByID(pair.Target.ID)
				if err != nil {
					dropped++
					log.Warn("product atom lookup failed; pair dropped",
						logging.Stringer("combination", c), logging.String("atom_id", pair.Target.ID), logging.Err(err))
					continue
				}
				m.Put(q, t)
			}

			solutions = append(solutions, &mapping.MCSSolution{
				ReactantIndex: c.ReactantIndex,
				ProductIndex:  c.ProductIndex,
				Reactant:      reactant,
				Product:       product,
				Mapping:       m,
			})
		}
		table.Remove(key)
	}

	for _, job := range table.Jobs() {
		combos := job.Combinations()
		names := make([]string, len(combos))
		for k, c := range combos {
			names[k] = c.String()
		}
		log.Warn("job produced no solution; pairs omitted",
			logging.Stringer("combination", job.Key), logging.Any("omitted", names))
		table.Remove(job.Key)
	}
	return solutions, dropped
}
