package reaction

import (
	"github.com/turtacn/ReactionMapper/internal/domain/molecule"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// Container is the in-memory Source.  It holds per-run state only and is not
// safe for concurrent mutation; once populated it may be read concurrently.
type Container struct {
	ID string

	educts          []*molecule.Graph
	eductModified   []bool
	products        []*molecule.Graph
	productModified []bool
	similarity      *SimilarityMatrix
}

var _ Source = (*Container)(nil)

// NewContainer returns an empty reaction.
func NewContainer(id string) *Container {
	return &Container{ID: id, similarity: NewSimilarityMatrix(0, 0)}
}

// AddEduct appends g as a reactant and returns its index.  Adding the same
// instance twice models a stoichiometric coefficient of two.
func (c *Container) AddEduct(g *molecule.Graph, modified bool) int {
	c.educts = append(c.educts, g)
	c.eductModified = append(c.eductModified, modified)
	c.similarity.Resize(len(c.educts), len(c.products))
	return len(c.educts) - 1
}

// AddProduct appends g as a product and returns its index.
func (c *Container) AddProduct(g *molecule.Graph, modified bool) int {
	c.products = append(c.products, g)
	c.productModified = append(c.productModified, modified)
	c.similarity.Resize(len(c.educts), len(c.products))
	return len(c.products) - 1
}

// SetEductModified updates the modification flag of reactant i.
func (c *Container) SetEductModified(i int, modified bool) error {
	if i < 0 || i >= len(c.educts) {
		return errors.Newf(errors.ErrCodeReactionIndexOutOfRange, "reactant %d out of range [0,%d)", i, len(c.educts))
	}
	c.eductModified[i] = modified
	return nil
}

// SetProductModified updates the modification flag of product j.
func (c *Container) SetProductModified(j int, modified bool) error {
	if j < 0 || j >= len(c.products) {
		return errors.Newf(errors.ErrCodeReactionIndexOutOfRange, "product %d out of range [0,%d)", j, len(c.products))
	}
	c.productModified[j] = modified
	return nil
}

// SetSimilarity records the score of reactant i against product j.
func (c *Container) SetSimilarity(i, j int, v float64) error {
	return c.similarity.Set(i, j, v)
}

// EductCount implements Source.
func (c *Container) EductCount() int { return len(c.educts) }

// ProductCount implements Source.
func (c *Container) ProductCount() int { return len(c.products) }

// Educt implements Source.
func (c *Container) Educt(i int) *molecule.Graph {
	if i < 0 || i >= len(c.educts) {
		return nil
	}
	return c.educts[i]
}

// Product implements Source.
func (c *Container) Product(j int) *molecule.Graph {
	if j < 0 || j >= len(c.products) {
		return nil
	}
	return c.products[j]
}

// IsEductModified implements Source.  Out-of-range indices report false.
func (c *Container) IsEductModified(i int) bool {
	return i >= 0 && i < len(c.eductModified) && c.eductModified[i]
}

// IsProductModified implements Source.
func (c *Container) IsProductModified(j int) bool {
	return j >= 0 && j < len(c.productModified) && c.productModified[j]
}

// Similarity implements Source.
func (c *Container) Similarity(i, j int) (float64, bool) {
	v := c.similarity.Value(i, j)
	return v, v != Unknown
}

// Graphs returns every distinct graph instance, reactants first, in first
// appearance order.
func Graphs(src Source) []*molecule.Graph {
	seen := make(map[*molecule.Graph]struct{})
	var out []*molecule.Graph
	add := func(g *molecule.Graph) {
		if g == nil {
			return
		}
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	for i := 0; i < src.EductCount(); i++ {
		add(src.Educt(i))
	}
	for j := 0; j < src.ProductCount(); j++ {
		add(src.Product(j))
	}
	return out
}
