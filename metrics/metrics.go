package metrics

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/metavuln/fba"
)

const namespace = "metavuln"

// Status label values.
const (
	StatusOK         = "ok"
	StatusInfeasible = "infeasible"
	StatusUnbounded  = "unbounded"
	StatusCancelled  = "cancelled"
	StatusError      = "error"
)

// Metrics groups the instruments of one process or test.
type Metrics struct {
	reg *prometheus.Registry

	// oracleLatency measures Oracle calls. Labels: op, status.
	oracleLatency *prometheus.HistogramVec

	// stageDuration measures pipeline stages. Labels: stage, status.
	stageDuration *prometheus.HistogramVec

	// sweepRows counts computed sweep rows. Labels: status.
	sweepRows *prometheus.CounterVec

	// sweepRowDuration measures sweep rows. Labels: fraction.
	sweepRowDuration *prometheus.HistogramVec
}

// New registers the instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		oracleLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "call_duration_seconds",
			Help:      "Optimization oracle call latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"op", "status"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Critical point pipeline stage duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"stage", "status"}),
		sweepRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "rows_total",
			Help:      "Growth sweep rows computed",
		}, []string{"status"}),
		sweepRowDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "row_duration_seconds",
			Help:      "Growth sweep row duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"fraction"}),
	}
}

// Registry returns the registry holding the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Status maps an error to a status label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, fba.ErrInfeasible):
		return StatusInfeasible
	case errors.Is(err, fba.ErrUnbounded):
		return StatusUnbounded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCancelled
	default:
		return StatusError
	}
}

// OracleObserver returns an fba.Observer recording call latency.
func (m *Metrics) OracleObserver() fba.Observer {
	return func(op string, elapsed time.Duration, err error) {
		m.oracleLatency.WithLabelValues(op, Status(err)).Observe(elapsed.Seconds())
	}
}

// StageObserver returns a pipeline stage hook.
func (m *Metrics) StageObserver() func(stage string, elapsed time.Duration, err error) {
	return func(stage string, elapsed time.Duration, err error) {
		m.stageDuration.WithLabelValues(stage, Status(err)).Observe(elapsed.Seconds())
	}
}

// SweepObserver returns a sweep row hook. The initial row is labelled
// "initial".
func (m *Metrics) SweepObserver() func(fraction float64, elapsed time.Duration, err error) {
	return func(fraction float64, elapsed time.Duration, err error) {
		label := "initial"
		if !math.IsNaN(fraction) {
			label = strconv.FormatFloat(fraction, 'g', -1, 64)
		}
		m.sweepRows.WithLabelValues(Status(err)).Inc()
		m.sweepRowDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	}
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
