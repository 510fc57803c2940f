// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/matrix"
)

// toy RETURNS EX_A: -> A, R1: A -> B, R2: B -> A, EX_B: B -> and an isolated X.
// Rows A and B of S are negatives of each other only on R1/R2, so both stay
// independent because of the exchange columns.
func toy(t *testing.T) *core.Network {
	t.Helper()
	n := core.NewNetwork("toy")
	for _, m := range []string{"A", "B", "X"} {
		require.NoError(t, n.AddMetabolite(core.Metabolite{ID: m, Compartment: "c"}))
	}
	add := func(id string, st map[string]float64) {
		require.NoError(t, n.AddReaction(core.Reaction{ID: id, UpperBound: 10}, st))
	}
	add("EX_A", map[string]float64{"A": 1})
	add("R1", map[string]float64{"A": -1, "B": 1})
	add("R2", map[string]float64{"A": 1, "B": -1})
	add("EX_B", map[string]float64{"B": -1})
	return n
}

func TestNewStoichiometric(t *testing.T) {
	s, err := matrix.NewStoichiometric(toy(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, s.Rows, "isolated metabolites are skipped")
	assert.Equal(t, []string{"EX_A", "EX_B", "R1", "R2"}, s.Cols)
	want := mat.NewDense(2, 4, []float64{
		1, 0, -1, 1,
		0, -1, 1, -1,
	})
	assert.True(t, mat.Equal(want, s.Mat))

	j, err := s.Column("R2")
	require.NoError(t, err)
	assert.Equal(t, 3, j)
	_, err = s.Column("nope")
	require.ErrorIs(t, err, matrix.ErrUnknownReaction)
	assert.Equal(t, 1, s.Row("B"))
	assert.Equal(t, -1, s.Row("X"))
}

func TestNewStoichiometricErrors(t *testing.T) {
	_, err := matrix.NewStoichiometric(nil)
	require.ErrorIs(t, err, matrix.ErrNetworkNil)

	_, err = matrix.NewStoichiometric(core.NewNetwork("empty"))
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestIndependentRowsDropsDependentRows(t *testing.T) {
	n := core.NewNetwork("closed")
	for _, m := range []string{"A", "B", "C"} {
		require.NoError(t, n.AddMetabolite(core.Metabolite{ID: m, Compartment: "c"}))
	}
	// A closed cycle conserves A+B+C, so the three rows sum to zero.
	require.NoError(t, n.AddReaction(core.Reaction{ID: "R1", UpperBound: 1}, map[string]float64{"A": -1, "B": 1}))
	require.NoError(t, n.AddReaction(core.Reaction{ID: "R2", UpperBound: 1}, map[string]float64{"B": -1, "C": 1}))
	require.NoError(t, n.AddReaction(core.Reaction{ID: "R3", UpperBound: 1}, map[string]float64{"C": -1, "A": 1}))

	s, err := matrix.NewStoichiometric(n)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, s.IndependentRows(0))

	red, ids := s.Reduced(matrix.DefaultRankTol)
	r, c := red.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []string{"A", "B"}, ids)
}

func TestIndependentRowsFullRank(t *testing.T) {
	s, err := matrix.NewStoichiometric(toy(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, s.IndependentRows(matrix.DefaultRankTol))
}
