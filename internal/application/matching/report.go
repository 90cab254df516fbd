package matching

import (
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	maptypes "github.com/turtacn/ReactionMapper/pkg/types/mapping"
)

// NewReport converts a run result into its serialisable form.  Solutions are
// emitted in Combination order.
func NewReport(reactionID string, res *RunResult) maptypes.Report {
	solutions := append(res.Solutions[:0:0], res.Solutions...)
	SortSolutions(solutions)

	report := maptypes.Report{
		RunID:      res.RunID,
		ReactionID: reactionID,
		Theory:     res.Theory.String(),
		Candidates: res.Candidates,
		Jobs:       res.Jobs,
		ElapsedMS:  res.Duration.Milliseconds(),
		Partial:    res.TimedOut,
		Solutions:  make([]maptypes.Solution, 0, len(solutions)),
	}
	for _, s := range solutions {
		out := maptypes.Solution{
			ReactantIndex: s.ReactantIndex,
			ProductIndex:  s.ProductIndex,
			ReactantID:    s.Reactant.ID,
			ProductID:     s.Product.ID,
			ReactantAtoms: s.Reactant.AtomCount(),
			ProductAtoms:  s.Product.AtomCount(),
			Pairs:         make([]maptypes.Pair, 0, s.Mapping.Count()),
		}
		for _, p := range s.Mapping.IDPairs() {
			out.Pairs = append(out.Pairs, maptypes.Pair{Reactant: p[0], Product: p[1]})
		}
		report.Solutions = append(report.Solutions, out)
	}
	return report
}

// Inspect reports what a run over src would do without calling the kernel:
// candidate and job counts plus atom identifier problems.
func Inspect(src reaction.Source, reactionID string, indexed bool) maptypes.Validation {
	candidates := GenerateCandidates(src)
	jobs := 0
	if candidates.Len() > 0 {
		jobs = BuildJobs(src, candidates, indexed).Len()
	}
	problems := reaction.IdentifierProblems(src)
	return maptypes.Validation{
		ReactionID: reactionID,
		Reactants:  src.EductCount(),
		Products:   src.ProductCount(),
		Candidates: candidates.Len(),
		Jobs:       jobs,
		Valid:      len(problems) == 0,
		Problems:   problems,
	}
}
