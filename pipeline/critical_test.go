package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/builder"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/fba/fbatest"
	"github.com/katalvlaran/metavuln/pipeline"
)

func toyLoader(t *testing.T) analysis.Loader {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	return analysis.CloneLoader(n)
}

func TestCriticalPoints(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthValue: 20, Genes: []string{"b1"}, Knockouts: map[string]float64{"GLCt": 0}}
	var stages []string
	res, err := pipeline.CriticalPoints(context.Background(), toyLoader(t), oracle,
		pipeline.WithObserver(func(stage string, _ time.Duration, err error) {
			assert.NoError(t, err)
			stages = append(stages, stage)
		}))
	require.NoError(t, err)

	assert.Equal(t, "toy", res.Model)
	assert.Equal(t, pipeline.Stages, stages)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Ordered(), 4)

	initial, dem := res.Stage(pipeline.StageInitial), res.Stage(pipeline.StageDEM)
	assert.Equal(t, []string{"ac_c", "xu5p_c"}, initial.DeadEndIDs())
	assert.Contains(t, initial.ReactionIDs(), "RPE")
	assert.NotContains(t, dem.ReactionIDs(), "RPE")
	assert.Empty(t, dem.DeadEndIDs())
	assert.Equal(t, []string{"GLCt"}, initial.EssentialReactions())
	assert.Equal(t, []string{"b1"}, dem.EssentialGenes())

	// fva starts again from the loaded model
	assert.Contains(t, res.Stage(pipeline.StageFVA).ReactionIDs(), "RPE")
	assert.NotContains(t, res.Stage(pipeline.StageFVADEM).ReactionIDs(), "RPE")
	assert.Equal(t, 1, oracle.Calls(fba.OpFluxVariability))
	assert.Equal(t, 4, oracle.Calls(fba.OpKnockout))
}

func TestCriticalPointsFVAFailure(t *testing.T) {
	oracle := &fbatest.Oracle{
		GrowthValue: 20,
		FVAFunc: func(*core.Network, float64) (map[string]core.FluxRange, error) {
			return nil, fba.ErrInfeasible
		},
	}
	res, err := pipeline.CriticalPoints(context.Background(), toyLoader(t), oracle, pipeline.WithFraction(0.5))
	require.NoError(t, err)

	require.Len(t, res.Ordered(), 4)
	want := "Couldn't run Flux Variability Analysis: Model is infeasible"
	assert.Equal(t, want, res.Errors[pipeline.StageFVA])
	assert.Equal(t, want, res.Errors[pipeline.StageFVADEM])
	assert.NotContains(t, res.Errors, pipeline.StageInitial)

	fva := res.Stage(pipeline.StageFVA)
	assert.Empty(t, fva.Chokepoints())
	assert.Empty(t, fva.FVA())
	assert.Len(t, fva.ReactionIDs(), 9)
}

func TestCriticalPointsGeneFailure(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthValue: 20, GenesErr: errors.New("solver timeout")}
	res, err := pipeline.CriticalPoints(context.Background(), toyLoader(t), oracle)
	require.NoError(t, err)

	assert.Equal(t, "Couldn't find essential genes: solver timeout", res.Errors[pipeline.StageInitial])
	assert.Equal(t, "Couldn't find essential genes: solver timeout", res.Errors[pipeline.StageFVA])
	assert.NotContains(t, res.Errors, pipeline.StageDEM)
	// skipped after a failure until the model is reloaded
	assert.Equal(t, 2, oracle.Calls(fba.OpEssentialGenes))
}

func TestCriticalPointsGrowthFailure(t *testing.T) {
	oracle := &fbatest.Oracle{GrowthErr: fba.ErrUnbounded}
	res, err := pipeline.CriticalPoints(context.Background(), toyLoader(t), oracle)
	require.NoError(t, err)

	assert.Equal(t, "Couldn't compute growth: Model is unbounded", res.Errors[pipeline.StageInitial])
	assert.Empty(t, res.Stage(pipeline.StageInitial).EssentialReactions())
}

func TestCriticalPointsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	oracle := &fbatest.Oracle{GrowthValue: 20}

	res, err := pipeline.CriticalPoints(ctx, toyLoader(t), oracle,
		pipeline.WithObserver(func(stage string, _ time.Duration, _ error) {
			if stage == pipeline.StageInitial {
				cancel()
			}
		}))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)

	assert.NotNil(t, res.Stage(pipeline.StageInitial))
	assert.Nil(t, res.Stage(pipeline.StageDEM))
	assert.Len(t, res.Ordered(), 1)
}

func TestCriticalPointsLoaderError(t *testing.T) {
	boom := errors.New("load failed")
	_, err := pipeline.CriticalPoints(context.Background(),
		func(context.Context) (*core.Network, error) { return nil, boom },
		&fbatest.Oracle{})
	assert.ErrorIs(t, err, boom)
}
