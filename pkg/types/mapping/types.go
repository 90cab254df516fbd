// Package mapping defines the serialisable atom-atom mapping report returned
// by `rxnmap map` and POST /api/v1/mappings.
package mapping

import (
	"strconv"
	"strings"
)

// Report is the result of one MatchAll run.
type Report struct {
	RunID      string     `json:"run_id" yaml:"run_id"`
	ReactionID string     `json:"reaction_id" yaml:"reaction_id"`
	Theory     string     `json:"theory" yaml:"theory"`
	Candidates int        `json:"candidates" yaml:"candidates"`
	Jobs       int        `json:"jobs" yaml:"jobs"`
	ElapsedMS  int64      `json:"elapsed_ms" yaml:"elapsed_ms"`
	Partial    bool       `json:"partial,omitempty" yaml:"partial,omitempty"`
	Solutions  []Solution `json:"solutions" yaml:"solutions"`
}

// Solution is the mapping between one reactant and one product.
type Solution struct {
	ReactantIndex int    `json:"reactant_index" yaml:"reactant_index"`
	ProductIndex  int    `json:"product_index" yaml:"product_index"`
	ReactantID    string `json:"reactant_id" yaml:"reactant_id"`
	ProductID     string `json:"product_id" yaml:"product_id"`
	ReactantAtoms int    `json:"reactant_atoms" yaml:"reactant_atoms"`
	ProductAtoms  int    `json:"product_atoms" yaml:"product_atoms"`
	Pairs         []Pair `json:"pairs" yaml:"pairs"`
}

// Pair is one atom correspondence, expressed by atom identifier.
type Pair struct {
	Reactant string `json:"reactant" yaml:"reactant"`
	Product  string `json:"product" yaml:"product"`
}

// Validation is the result of `rxnmap validate`.
type Validation struct {
	ReactionID string   `json:"reaction_id" yaml:"reaction_id"`
	Reactants  int      `json:"reactants" yaml:"reactants"`
	Products   int      `json:"products" yaml:"products"`
	Candidates int      `json:"candidates" yaml:"candidates"`
	Jobs       int      `json:"jobs" yaml:"jobs"`
	Valid      bool     `json:"valid" yaml:"valid"`
	Problems   []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// TableHeaders implements the CLI table view of a report.
func (r Report) TableHeaders() []string {
	return []string{"REACTANT", "PRODUCT", "PAIRS", "ATOMS"}
}

// TableRows returns one row per solution.  ATOMS is reactant/product atom
// counts.
func (r Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Solutions))
	for _, s := range r.Solutions {
		rows = append(rows, []string{
			strconv.Itoa(s.ReactantIndex) + ":" + s.ReactantID,
			strconv.Itoa(s.ProductIndex) + ":" + s.ProductID,
			strconv.Itoa(len(s.Pairs)),
			strconv.Itoa(s.ReactantAtoms) + "/" + strconv.Itoa(s.ProductAtoms),
		})
	}
	return rows
}

func (v Validation) TableHeaders() []string {
	return []string{"REACTION", "REACTANTS", "PRODUCTS", "CANDIDATES", "JOBS", "PROBLEMS"}
}

func (v Validation) TableRows() [][]string {
	problems := "-"
	if len(v.Problems) > 0 {
		problems = strings.Join(v.Problems, "; ")
	}
	return [][]string{{
		v.ReactionID,
		strconv.Itoa(v.Reactants),
		strconv.Itoa(v.Products),
		strconv.Itoa(v.Candidates),
		strconv.Itoa(v.Jobs),
		problems,
	}}
}
