package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/builder"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/fba/fbatest"
	"github.com/katalvlaran/metavuln/pipeline"
	"github.com/katalvlaran/metavuln/report"
	"github.com/katalvlaran/metavuln/sweep"
)

func toyLoader(t *testing.T) analysis.Loader {
	t.Helper()
	n, err := builder.BuildNetwork("toy", nil, builder.Toy())
	require.NoError(t, err)
	return analysis.CloneLoader(n)
}

func criticalRun(t *testing.T) *pipeline.Result {
	t.Helper()
	oracle := &fbatest.Oracle{GrowthValue: 20, Knockouts: map[string]float64{"GLCt": 0}}
	res, err := pipeline.CriticalPoints(context.Background(), toyLoader(t), oracle)
	require.NoError(t, err)
	return res
}

func TestCriticalSummary(t *testing.T) {
	c, err := report.CriticalSummary(criticalRun(t))
	require.NoError(t, err)

	_, err = uuid.Parse(c.RunID)
	require.NoError(t, err)
	require.Len(t, c.Stages, 4)
	assert.Equal(t, "initial", c.Stages[0].Stage)
	assert.Equal(t, 9, c.Stages[0].Reactions)
	assert.Equal(t, 2, c.Stages[0].DeadEnds)
	assert.Equal(t, 6, c.Stages[1].Reactions)
	assert.Equal(t, 0, c.Stages[1].DeadEnds)

	dem := c.Comparisons[report.SetDeadEnds]
	require.Len(t, dem, 4)
	assert.Equal(t, []string{"ac_c", "xu5p_c"}, dem[0].OnlyBefore)
	assert.Empty(t, dem[0].OnlyAfter)

	dead := c.Comparisons[report.SetDeadReactions]
	assert.Equal(t, []string{"BLOCKED"}, dead[0].OnlyBefore)
}

func TestCriticalSummaryJSON(t *testing.T) {
	c, err := report.CriticalSummary(criticalRun(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, c))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "toy", got["model"])
	assert.Len(t, got["snapshots"], 4)
	assert.Contains(t, got["comparisons"], report.SetChokepoints)
}

func TestCriticalTableTSV(t *testing.T) {
	res := criticalRun(t)
	res.Errors[pipeline.StageFVA] = "Couldn't run Flux Variability Analysis: Model is infeasible"
	c, err := report.CriticalSummary(res)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteTSV(&buf, c.Table()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "stage\tobjective_value\treactions"))
	assert.True(t, strings.HasPrefix(lines[1], "initial\t20\t9\t8\t8\t2\t"))
	assert.True(t, strings.HasSuffix(lines[3], "Model is infeasible"))
}

func TestSweepTable(t *testing.T) {
	oracle := &fbatest.Oracle{
		GrowthValue: 20,
		FVAFunc: func(n *core.Network, f float64) (map[string]core.FluxRange, error) {
			if f == 1.0 {
				return nil, fba.ErrUnbounded
			}
			out := make(map[string]core.FluxRange)
			for _, r := range n.Reactions() {
				out[r.ID] = core.FluxRange{Min: r.LowerBound, Max: r.UpperBound}
			}
			return out, nil
		},
	}
	res, err := sweep.Run(context.Background(), toyLoader(t), oracle, sweep.WithFractions(0, 1))
	require.NoError(t, err)

	tbl := report.SweepTable(res)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"Initial", "2", "1", "6"}, tbl.Rows[0][:4])
	assert.Equal(t, "0", tbl.Rows[1][0])
	assert.Equal(t, "Error running FVA: Model is unbounded", tbl.Rows[2][1])

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, report.SweepSummary(res)))
	assert.Contains(t, buf.String(), `"blocked": [`)
	assert.Contains(t, buf.String(), `"run_id"`)
}
