package sweep_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/builder"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/fba/fbatest"
	"github.com/katalvlaran/metavuln/sweep"
)

func toyLoader(t *testing.T) analysis.Loader {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	return analysis.CloneLoader(n)
}

// tighteningFVA blocks the pentose branch from fraction 0.5 on, pins PGI
// forward above 0 and is infeasible at 1.0 only.
func tighteningFVA(n *core.Network, f float64) (map[string]core.FluxRange, error) {
	if f == 1.0 {
		return nil, fba.ErrInfeasible
	}
	out := make(map[string]core.FluxRange)
	for _, r := range n.Reactions() {
		out[r.ID] = core.FluxRange{Min: r.LowerBound, Max: r.UpperBound}
	}
	if f > 0 {
		out["PGI"] = core.FluxRange{Min: 1, Max: 10}
	}
	if f >= 0.5 {
		out["G6PDH"] = core.FluxRange{}
		out["RPE"] = core.FluxRange{}
	}
	return out, nil
}

func TestRunInfeasibleAtOptimumOnly(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthValue: 20, FVAFunc: tighteningFVA, Knockouts: map[string]float64{"GLCt": 0, "G6PDH": 15}}

	res, err := sweep.Run(context.Background(), toyLoader(t), oracle)
	require.NoError(t, err)
	require.Len(t, res.Rows, len(sweep.Fractions)+1)

	initial := res.Rows[0]
	assert.Equal(t, sweep.InitialLabel, initial.Label)
	assert.True(t, math.IsNaN(initial.Fraction))
	assert.Equal(t, []string{"EX_glc", "PGI"}, initial.Reversible)
	assert.Equal(t, []string{"GLCt"}, initial.EssentialReactions)
	assert.Equal(t, []string{"GLCt"}, res.Essential)
	assert.Equal(t, []string{"G6PDH", "GLCt"}, res.OptimalEssential)

	for _, row := range res.Rows[1 : len(res.Rows)-1] {
		assert.False(t, row.Failed(), row.Label)
		assert.NotEmpty(t, row.Dead, row.Label)
		assert.NotEmpty(t, row.NonReversible, row.Label)
		assert.NotEmpty(t, row.Chokepoints, row.Label)
		assert.NotEmpty(t, row.FVA, row.Label)
	}

	last := res.Rows[len(res.Rows)-1]
	assert.Equal(t, "1", last.Label)
	assert.Equal(t, "Error running FVA: Model is infeasible", last.Err)
	assert.Empty(t, last.Dead)

	half := res.Rows[6]
	assert.Equal(t, "0.5", half.Label)
	assert.Equal(t, []string{"BLOCKED", "G6PDH", "RPE"}, half.Dead)
	assert.Equal(t, []string{"EX_glc"}, half.Reversible)

	// growth essential per fraction comes from the initial knockouts
	assert.Empty(t, res.Rows[1].EssentialReactions)
	assert.Equal(t, []string{"GLCt"}, res.Rows[2].EssentialReactions)
	assert.Equal(t, []string{"G6PDH", "GLCt"}, res.Rows[10].EssentialReactions)

	assert.Equal(t, []string{"BLOCKED"}, res.Blocked)
	assert.Equal(t, 1, oracle.Calls(fba.OpKnockout))
}

func TestRunParallelMatchesSequential(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthValue: 20, FVAFunc: tighteningFVA}
	seq, err := sweep.Run(context.Background(), toyLoader(t), oracle)
	require.NoError(t, err)

	var mu sync.Mutex
	seen := 0
	par, err := sweep.Run(context.Background(), toyLoader(t), oracle,
		sweep.WithParallelism(4),
		sweep.WithObserver(func(float64, time.Duration, error) {
			mu.Lock()
			seen++
			mu.Unlock()
		}))
	require.NoError(t, err)

	assert.Equal(t, len(sweep.Fractions)+1, seen)
	for i := range seq.Rows {
		assert.Equal(t, seq.Rows[i].Label, par.Rows[i].Label)
		assert.Equal(t, seq.Rows[i].Dead, par.Rows[i].Dead)
		assert.Equal(t, seq.Rows[i].Chokepoints, par.Rows[i].Chokepoints)
		assert.Equal(t, seq.Rows[i].Err, par.Rows[i].Err)
	}
}

func TestRunCustomFractions(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthValue: 20}
	res, err := sweep.Run(context.Background(), toyLoader(t), oracle, sweep.WithFractions(0.25, 0.75))
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "0.25", res.Rows[1].Label)
	assert.Equal(t, "0.75", res.Rows[2].Label)
	assert.Empty(t, res.Blocked)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	oracle := &fbatest.Oracle{GrowthValue: 20}

	res, err := sweep.Run(ctx, toyLoader(t), oracle,
		sweep.WithObserver(func(f float64, _ time.Duration, _ error) {
			if math.IsNaN(f) {
				cancel()
			}
		}))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, sweep.InitialLabel, res.Rows[0].Label)
	assert.Equal(t, sweep.ErrCancelled.Error(), res.Rows[1].Err)
}

func TestRunLoaderError(t *testing.T) {
	boom := errors.New("missing model")
	_, err := sweep.Run(context.Background(),
		func(context.Context) (*core.Network, error) { return nil, boom },
		&fbatest.Oracle{})
	assert.ErrorIs(t, err, boom)
}
