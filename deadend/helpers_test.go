package deadend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/core"
)

type rxnSpec struct {
	id     string
	lo, hi float64
	st     map[string]float64
}

// buildNetwork adds metabolites (id -> compartment) and reactions in order.
func buildNetwork(t *testing.T, mets map[string]string, rxns []rxnSpec) *core.Network {
	t.Helper()
	n := core.NewNetwork("deadend")
	for id, comp := range mets {
		require.NoError(t, n.AddMetabolite(core.Metabolite{ID: id, Compartment: comp}))
	}
	for _, r := range rxns {
		require.NoError(t, n.AddReaction(core.Reaction{ID: r.id, LowerBound: r.lo, UpperBound: r.hi}, r.st))
	}
	return n
}

// branchedNetwork RETURNS
//
//	EX_A: -> A      R1: A -> B      R2: B -> C      EX_C: C ->
//	R3:   B -> D    R4: D -> E
//
// with A extracellular and the rest cytosolic. E is the only dead end;
// pruning it strands R4, then D, then R3.
func branchedNetwork(t *testing.T) *core.Network {
	return buildNetwork(t,
		map[string]string{"A": "e", "B": "c", "C": "c", "D": "c", "E": "c"},
		[]rxnSpec{
			{"EX_A", 0, 1000, map[string]float64{"A": 1}},
			{"R1", 0, 1000, map[string]float64{"A": -1, "B": 1}},
			{"R2", 0, 1000, map[string]float64{"B": -1, "C": 1}},
			{"EX_C", 0, 1000, map[string]float64{"C": -1}},
			{"R3", 0, 1000, map[string]float64{"B": -1, "D": 1}},
			{"R4", 0, 1000, map[string]float64{"D": -1, "E": 1}},
		})
}
