package snapshot_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/builder"
	"github.com/katalvlaran/metavuln/deadend"
	"github.com/katalvlaran/metavuln/fba/fbatest"
	"github.com/katalvlaran/metavuln/snapshot"
)

func session(t *testing.T, oracle *fbatest.Oracle) *analysis.Session {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	return analysis.New(n, oracle)
}

func TestBuildEmptyResults(t *testing.T) {
	s := session(t, nil)
	snap := snapshot.Build("initial", s)

	assert.Equal(t, "initial", snap.Stage())
	assert.Equal(t, "toy", snap.ID())
	assert.Equal(t, builder.ToyObjective, snap.Objective())
	assert.True(t, math.IsNaN(snap.ObjectiveValue()))
	assert.Empty(t, snap.DeadEnds())
	assert.Empty(t, snap.Chokepoints())
	assert.Empty(t, snap.FVA())
	assert.Empty(t, snap.Knockout())
	assert.Empty(t, snap.EssentialGenes())
	assert.Equal(t, []string{"BLOCKED"}, snap.DeadReactions())
	assert.Len(t, snap.ReactionIDs(), 9)
}

func TestSnapshotSurvivesMutation(t *testing.T) {
	ctx := context.Background()
	s := session(t, &fbatest.Oracle{GrowthValue: 20, Genes: []string{"b1"}})
	s.FindDeadEnds(deadend.All)
	s.FindChokepoints(true)
	require.NoError(t, s.ComputeEssentialReactions(ctx))
	require.NoError(t, s.FindEssentialGenes(ctx))
	require.NoError(t, s.FindEssentialGeneReactions())
	require.NoError(t, s.RunFVA(ctx, 1, false))

	before := snapshot.Build("initial", s)
	reactions := before.ReactionIDs()
	dem := before.DeadEndIDs()
	facts := before.Chokepoints()

	_, err := s.RemoveDeadEnds(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Network().SetBounds("PGI", 0, 5))
	s.FindChokepoints(true)

	assert.Equal(t, reactions, before.ReactionIDs())
	assert.Equal(t, dem, before.DeadEndIDs())
	assert.Equal(t, facts, before.Chokepoints())
	assert.Equal(t, []string{"EX_glc", "PGI"}, before.ReversibleReactions())
	pgi, ok := before.Reaction("PGI")
	require.True(t, ok)
	assert.Equal(t, -1000.0, pgi.LowerBound)
	assert.Equal(t, 20.0, before.ObjectiveValue())
	assert.Equal(t, []string{"GLCt"}, before.EssentialGeneReactionIDs())

	after := snapshot.Build("dem", s)
	assert.NotContains(t, after.ReactionIDs(), "RPE")
	assert.Equal(t, []string{"EX_glc"}, after.ReversibleReactions())
}

func TestGettersReturnCopies(t *testing.T) {
	s := session(t, nil)
	s.FindDeadEnds(deadend.All)
	snap := snapshot.Build("initial", s)

	dem := snap.DeadEnds()
	dem["c"][0] = "mutated"
	assert.Equal(t, []string{"ac_c", "xu5p_c"}, snap.DeadEnds()["c"])

	r, ok := snap.Reaction("PFK")
	require.True(t, ok)
	r.Stoichiometry["pyr_c"] = 99
	r.Genes[0] = "x"
	again, _ := snap.Reaction("PFK")
	assert.Equal(t, 2.0, again.Stoichiometry["pyr_c"])
	assert.Equal(t, []string{"b5", "b6"}, again.Genes)
	assert.Equal(t, "f6p_c --> 2 pyr_c", again.Formula)

	_, ok = snap.Reaction("missing")
	assert.False(t, ok)
}

func TestMarshalJSON(t *testing.T) {
	ctx := context.Background()
	oracle := &fbatest.Oracle{GrowthValue: 20, Knockouts: map[string]float64{"GLCt": math.NaN()}}
	s := session(t, oracle)
	s.FindChokepoints(true)
	require.NoError(t, s.ComputeEssentialReactions(ctx))

	raw, err := json.Marshal(snapshot.Build("initial", s))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "initial", got["stage"])
	assert.Equal(t, 20.0, got["objective_value"])
	assert.Contains(t, got["essential_reactions"], "GLCt")

	var glct []any
	for _, row := range got["knockout_growth"].([]any) {
		if pair := row.([]any); pair[0] == "GLCt" {
			glct = pair
		}
	}
	assert.Equal(t, []any{"GLCt", "NaN"}, glct)
	assert.Contains(t, got["chokepoints"], []any{"HEX", "glc_c"})
}

func TestNumber(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"Infinity"`},
		{math.Inf(-1), `"-Infinity"`},
		{1.5, `1.5`},
	} {
		raw, err := json.Marshal(snapshot.Number(tc.in))
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(raw))
	}
}
