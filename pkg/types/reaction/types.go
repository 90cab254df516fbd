// Package reaction defines the serialisable reaction document accepted by the
// CLI (YAML or JSON files) and the HTTP API (JSON bodies).  Conversion to the
// domain Container lives in internal/domain/reaction.
package reaction

// Document is one reaction: reactant and product graphs plus optional
// per-side modification flags and a reactant-by-product similarity matrix.
type Document struct {
	// ID names the reaction in logs and reports.
	ID string `json:"id" yaml:"id"`

	Reactants []GraphDoc `json:"reactants" yaml:"reactants"`
	Products  []GraphDoc `json:"products" yaml:"products"`

	// Similarity holds one row per reactant entry (after stoichiometric
	// expansion) and one column per product entry.  A null cell, a short row
	// or an absent matrix means the similarity is unknown.
	Similarity [][]*float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// GraphDoc is one molecule on either side of the reaction.
type GraphDoc struct {
	ID string `json:"id" yaml:"id"`

	// Ref reuses the graph instance declared earlier under that ID instead of
	// defining a new one.  Atoms and Bonds must then be empty.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Count is the stoichiometric coefficient; the same instance is listed
	// Count times.  Zero means one.
	Count int `json:"count,omitempty" yaml:"count,omitempty"`

	// Modified marks the molecule as changed by the reaction.  Nil means true.
	Modified *bool `json:"modified,omitempty" yaml:"modified,omitempty"`

	Atoms []AtomDoc `json:"atoms,omitempty" yaml:"atoms,omitempty"`
	Bonds []BondDoc `json:"bonds,omitempty" yaml:"bonds,omitempty"`
}

// AtomDoc is one atom.  An empty ID is allowed; the importer may assign one.
type AtomDoc struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Charge   int    `json:"charge,omitempty" yaml:"charge,omitempty"`
	Aromatic bool   `json:"aromatic,omitempty" yaml:"aromatic,omitempty"`
}

// BondDoc joins the atoms at positions Begin and End of the enclosing
// GraphDoc.  Order is 1, 2, 3 or 4 (aromatic); zero means single.
type BondDoc struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
	Order int `json:"order,omitempty" yaml:"order,omitempty"`
}
