package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/metrics"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, metrics.StatusOK},
		{fmt.Errorf("Growth: %w", fba.ErrInfeasible), metrics.StatusInfeasible},
		{fba.ErrUnbounded, metrics.StatusUnbounded},
		{context.Canceled, metrics.StatusCancelled},
		{&fba.SolverError{Op: "growth", Err: errors.New("boom")}, metrics.StatusError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, metrics.Status(tc.err), "%v", tc.err)
	}
}

func TestObserversRecord(t *testing.T) {
	m := metrics.New()

	oracle := m.OracleObserver()
	oracle(fba.OpGrowth, 10*time.Millisecond, nil)
	oracle(fba.OpGrowth, 20*time.Millisecond, fba.ErrInfeasible)
	oracle(fba.OpFluxVariability, time.Second, nil)

	stage := m.StageObserver()
	stage("initial", time.Second, nil)

	row := m.SweepObserver()
	row(math.NaN(), time.Millisecond, nil)
	row(0.5, time.Millisecond, nil)
	row(1, time.Millisecond, fba.ErrInfeasible)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"metavuln_oracle_call_duration_seconds",
		"metavuln_pipeline_stage_duration_seconds",
		"metavuln_sweep_rows_total",
		"metavuln_sweep_row_duration_seconds",
	}, names)

	// two growth label sets plus one fva
	assert.Equal(t, 3, count(t, m, "metavuln_oracle_call_duration_seconds"))
	assert.Equal(t, 2, count(t, m, "metavuln_sweep_rows_total"))
	assert.Equal(t, 3, count(t, m, "metavuln_sweep_row_duration_seconds"))

	expected := `
# HELP metavuln_sweep_rows_total Growth sweep rows computed
# TYPE metavuln_sweep_rows_total counter
metavuln_sweep_rows_total{status="infeasible"} 1
metavuln_sweep_rows_total{status="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "metavuln_sweep_rows_total"))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.SweepObserver()(0, time.Millisecond, nil)

	assert.Equal(t, 1, count(t, a, "metavuln_sweep_rows_total"))
	assert.Equal(t, 0, count(t, b, "metavuln_sweep_rows_total"))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.StageObserver()("fva", 2*time.Second, fba.ErrInfeasible)

	path := filepath.Join(t.TempDir(), "metavuln.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `metavuln_pipeline_stage_duration_seconds_count{stage="fva",status="infeasible"} 1`)
}

func count(t *testing.T, m *metrics.Metrics, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(m.Registry(), name)
	require.NoError(t, err)
	return n
}
