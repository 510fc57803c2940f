// SPDX-License-Identifier: MIT
// Package matrix: stoichiometric builder with deterministic row/column order.
//
// Complexity:
//   - NewStoichiometric: O(M + R + nnz(S)) plus O(M·R) for the dense backing.
//   - IndependentRows:   O(M²·R) (modified Gram-Schmidt).

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/metavuln/core"
)

// DefaultRankTol is the relative residual below which a row counts as
// linearly dependent on the rows already selected.
const DefaultRankTol = 1e-9

// Stoichiometric wraps a dense metabolite-by-reaction coefficient matrix.
type Stoichiometric struct {
	// Mat holds the coefficients; rows follow Rows, columns follow Cols.
	Mat *mat.Dense

	// Rows lists metabolite ids (only those in at least one reaction).
	Rows []string

	// Cols lists reaction ids.
	Cols []string

	rowIndex map[string]int
	colIndex map[string]int
}

// NewStoichiometric builds S for n.
// Stage 1 (Validate): non-nil network with at least one reaction and one
// participating metabolite.
// Stage 2 (Index): sorted reaction ids as columns, participating metabolite
// ids as rows.
// Stage 3 (Fill): copy coefficients from the relation table.
// Errors: ErrNetworkNil, ErrBadShape.
func NewStoichiometric(n *core.Network) (*Stoichiometric, error) {
	if n == nil {
		return nil, fmt.Errorf("NewStoichiometric: %w", ErrNetworkNil)
	}

	cols := n.ReactionIDs()
	rows := make([]string, 0)
	for _, m := range n.MetaboliteIDs() {
		if len(n.MetaboliteReactions(m)) > 0 {
			rows = append(rows, m)
		}
	}
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("NewStoichiometric: %d x %d: %w", len(rows), len(cols), ErrBadShape)
	}

	s := &Stoichiometric{
		Mat:      mat.NewDense(len(rows), len(cols), nil),
		Rows:     rows,
		Cols:     cols,
		rowIndex: indexOf(rows),
		colIndex: indexOf(cols),
	}
	for j, rxn := range cols {
		for met, coef := range n.Stoichiometry(rxn) {
			s.Mat.Set(s.rowIndex[met], j, coef)
		}
	}

	return s, nil
}

// Column returns the index of reaction rxnID.
func (s *Stoichiometric) Column(rxnID string) (int, error) {
	j, ok := s.colIndex[rxnID]
	if !ok {
		return -1, fmt.Errorf("Column: %q: %w", rxnID, ErrUnknownReaction)
	}
	return j, nil
}

// Row returns the index of metabolite metID, or -1.
func (s *Stoichiometric) Row(metID string) int {
	i, ok := s.rowIndex[metID]
	if !ok {
		return -1
	}
	return i
}

// IndependentRows returns, in ascending order, the indices of a maximal set
// of linearly independent rows. A row is dropped when its residual after
// projection onto the kept rows has norm <= tol times its own norm.
func (s *Stoichiometric) IndependentRows(tol float64) []int {
	if tol <= 0 {
		tol = DefaultRankTol
	}
	r, _ := s.Mat.Dims()
	basis := make([][]float64, 0, r)
	kept := make([]int, 0, r)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, s.Mat)
		norm := floats.Norm(row, 2)
		if norm == 0 {
			continue
		}
		residual := append([]float64(nil), row...)
		for _, q := range basis {
			floats.AddScaled(residual, -floats.Dot(residual, q), q)
		}
		rn := floats.Norm(residual, 2)
		if rn <= tol*norm {
			continue
		}
		floats.Scale(1/rn, residual)
		basis = append(basis, residual)
		kept = append(kept, i)
	}

	return kept
}

// Reduced returns the submatrix of independent rows and their metabolite ids.
func (s *Stoichiometric) Reduced(tol float64) (*mat.Dense, []string) {
	idx := s.IndependentRows(tol)
	_, c := s.Mat.Dims()
	out := mat.NewDense(len(idx), c, nil)
	ids := make([]string, len(idx))
	for k, i := range idx {
		out.SetRow(k, mat.Row(nil, i, s.Mat))
		ids[k] = s.Rows[i]
	}

	return out, ids
}

func indexOf(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
