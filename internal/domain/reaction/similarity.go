package reaction

import "github.com/turtacn/ReactionMapper/pkg/errors"

// Unknown is the cell value of a similarity that has not been computed.
const Unknown = -1.0

// SimilarityMatrix is a dense reactant-by-product score matrix.  Every cell
// starts as Unknown.
type SimilarityMatrix struct {
	rows, cols int
	cells      []float64
}

// NewSimilarityMatrix returns a rows x cols matrix filled with Unknown.
func NewSimilarityMatrix(rows, cols int) *SimilarityMatrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	m := &SimilarityMatrix{rows: rows, cols: cols, cells: make([]float64, rows*cols)}
	for k := range m.cells {
		m.cells[k] = Unknown
	}
	return m
}

// Rows returns the number of reactant rows.
func (m *SimilarityMatrix) Rows() int { return m.rows }

// Cols returns the number of product columns.
func (m *SimilarityMatrix) Cols() int { return m.cols }

func (m *SimilarityMatrix) inRange(i, j int) bool {
	return m != nil && i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

// Set stores v at (i, j).  Passing Unknown clears the cell.
func (m *SimilarityMatrix) Set(i, j int, v float64) error {
	if !m.inRange(i, j) {
		return errors.Newf(errors.ErrCodeReactionIndexOutOfRange, "similarity cell (%d,%d) is outside %dx%d", i, j, m.Rows(), m.Cols())
	}
	m.cells[i*m.cols+j] = v
	return nil
}

// Value returns the raw cell, Unknown when out of range.
func (m *SimilarityMatrix) Value(i, j int) float64 {
	if !m.inRange(i, j) {
		return Unknown
	}
	return m.cells[i*m.cols+j]
}

// IsKnown reports whether (i, j) holds a computed score.
func (m *SimilarityMatrix) IsKnown(i, j int) bool {
	return m.Value(i, j) != Unknown
}

// Resize grows or shrinks the matrix, keeping the overlapping cells and
// marking new ones Unknown.
func (m *SimilarityMatrix) Resize(rows, cols int) {
	next := NewSimilarityMatrix(rows, cols)
	for i := 0; i < rows && i < m.rows; i++ {
		for j := 0; j < cols && j < m.cols; j++ {
			next.cells[i*cols+j] = m.cells[i*m.cols+j]
		}
	}
	*m = *next
}
