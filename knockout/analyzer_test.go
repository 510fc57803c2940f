package knockout_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/knockout"
)

const maxGrowth = 0.8

func sampleResult() knockout.Result {
	return knockout.Result{
		"LETHAL":  0,
		"NAN":     math.NaN(),
		"NOISE":   1e-7,
		"HALF":    0.4,
		"SLIGHT":  0.79,
		"NEUTRAL": 0.8,
		"EPS":     0.8 - 1e-6,
	}
}

func TestEssential(t *testing.T) {
	a := knockout.NewAnalyzer()
	res := sampleResult()

	got := a.Essential(res, maxGrowth)
	assert.Equal(t, []string{"LETHAL", "NAN", "NOISE"}, got)
	for _, rxn := range got {
		g := res[rxn]
		assert.True(t, math.IsNaN(g) || g < core.Epsilon, rxn)
	}
}

func TestEssentialUnknownGrowth(t *testing.T) {
	a := knockout.NewAnalyzer()
	assert.Empty(t, a.Essential(sampleResult(), math.NaN()))
}

func TestGrowthEssential(t *testing.T) {
	a := knockout.NewAnalyzer()
	res := sampleResult()

	assert.Equal(t, []string{"LETHAL", "NAN", "NOISE"}, a.GrowthEssential(res, maxGrowth, 0.5))
	assert.Equal(t, []string{"HALF", "LETHAL", "NAN", "NOISE", "SLIGHT"}, a.GrowthEssential(res, maxGrowth, 1.0))
	assert.Equal(t, []string{"NAN"}, a.GrowthEssential(res, maxGrowth, 0.0))
}

func TestGrowthEssentialAtFullGrowthContainsEssential(t *testing.T) {
	a := knockout.NewAnalyzer()
	res := sampleResult()

	full := a.GrowthEssential(res, maxGrowth, 1.0)
	for _, rxn := range a.Essential(res, maxGrowth) {
		assert.Contains(t, full, rxn)
	}
}

// TestGrowthEssentialOutOfRangeFraction pins the unclamped behaviour: the
// fraction is used as given and a warning is logged.
func TestGrowthEssentialOutOfRangeFraction(t *testing.T) {
	var buf bytes.Buffer
	a := knockout.NewAnalyzer(knockout.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	res := sampleResult()

	got := a.GrowthEssential(res, maxGrowth, 1.5)
	assert.Len(t, got, len(res), "1.5 x max growth is above every knockout")
	assert.Contains(t, buf.String(), "growth fraction outside [0, 1]")
	assert.Contains(t, buf.String(), "fraction=1.5")

	buf.Reset()
	assert.Equal(t, []string{"NAN"}, a.GrowthEssential(res, maxGrowth, -0.5))
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestOptimalGrowthEssential(t *testing.T) {
	a := knockout.NewAnalyzer()

	got := a.OptimalGrowthEssential(sampleResult(), maxGrowth)
	assert.Equal(t, []string{"HALF", "LETHAL", "NAN", "NOISE", "SLIGHT"}, got)
}

func TestWithEpsilon(t *testing.T) {
	a := knockout.NewAnalyzer(knockout.WithEpsilon(0.5))

	assert.Equal(t, []string{"HALF", "LETHAL", "NAN", "NOISE"}, a.Essential(sampleResult(), maxGrowth))
}

func TestGeneReactions(t *testing.T) {
	n := core.NewNetwork("genes")
	require.NoError(t, n.AddMetabolite(core.Metabolite{ID: "A", Compartment: "c"}))
	for id, rule := range map[string]string{
		"R_AND": "g1 and g2",
		"R_OR":  "g1 or g3",
		"R_ONE": "g2",
	} {
		require.NoError(t, n.AddReaction(core.Reaction{ID: id, UpperBound: 10, GeneRule: rule},
			map[string]float64{"A": -1}))
	}
	for _, g := range []string{"g1", "g2", "g3"} {
		require.NoError(t, n.AddGene(core.Gene{ID: g}))
	}
	links := map[string][]string{"g1": {"R_AND", "R_OR"}, "g2": {"R_AND", "R_ONE"}, "g3": {"R_OR"}}
	for g, rxns := range links {
		for _, r := range rxns {
			require.NoError(t, n.LinkGene(g, r))
		}
	}

	got, err := knockout.GeneReactions(n, []string{"g1", "g2", "g3"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"g1": {"R_AND"},
		"g2": {"R_AND", "R_ONE"},
		"g3": {},
	}, got)
}
