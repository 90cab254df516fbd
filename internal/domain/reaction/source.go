package reaction

import "github.com/turtacn/ReactionMapper/internal/domain/molecule"

// Source is the read-only view of a reaction consumed by the matching engine.
//
// Educt(i) and Product(j) return the graph instance held at that position;
// the same instance may appear at several positions (stoichiometry), which is
// what job deduplication relies on.  Out-of-range positions yield nil.
type Source interface {
	EductCount() int
	ProductCount() int
	Educt(i int) *molecule.Graph
	Product(j int) *molecule.Graph
	IsEductModified(i int) bool
	IsProductModified(j int) bool

	// Similarity returns the similarity score of reactant i and product j.
	// The second result is false when the score is unknown.
	Similarity(i, j int) (float64, bool)
}
