package matching

import (
	"sort"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
)

// SortSolutions orders solutions by Combination in place.
func SortSolutions(solutions []*mapping.MCSSolution) {
	sort.SliceStable(solutions, func(i, j int) bool {
		return solutions[i].Combination().Less(solutions[j].Combination())
	})
}
