// Package matching is the parallel maximum-common-subgraph engine.  For one
// reaction and one theory it
//
//  1. selects the (reactant, product) pairs that need matching,
//  2. folds pairs over identical graph instances into a single job,
//  3. derives the match flags of every job from its ring content,
//  4. runs the jobs on a bounded goroutine pool, and
//  5. copies each job's correspondence back onto every pair it absorbed,
//     expressed against the reaction's original atoms.
package matching

import (
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
)

// GenerateCandidates returns the pairs of src that need matching.
//
// (i, j) qualifies when both graphs exist and either both are non-empty with
// at least one side modified, or their similarity is unknown.
func GenerateCandidates(src reaction.Source) *reaction.CombinationSet {
	set := &reaction.CombinationSet{}
	if src == nil {
		return set
	}
	for i := 0; i < src.EductCount(); i++ {
		educt := src.Educt(i)
		if educt == nil {
			continue
		}
		for j := 0; j < src.ProductCount(); j++ {
			product := src.Product(j)
			if product == nil {
				continue
			}
			nonEmpty := educt.AtomCount() > 0 && product.AtomCount() > 0
			modified := src.IsEductModified(i) || src.IsProductModified(j)
			_, known := src.Similarity(i, j)
			if (nonEmpty && modified) || !known {
				set.Add(reaction.NewCombination(i, j))
			}
		}
	}
	return set
}
