package knockout

import (
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/metavuln/core"
)

// Result maps a reaction id to the growth obtained with that reaction's
// flux forced to zero. NaN marks an infeasible or failed knockout.
type Result map[string]float64

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for caller warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEpsilon overrides the zero-growth threshold (default core.Epsilon).
func WithEpsilon(eps float64) Option {
	return func(a *Analyzer) { a.eps = eps }
}

// Analyzer applies essentiality thresholds to knockout results.
type Analyzer struct {
	logger *slog.Logger
	eps    float64
}

// NewAnalyzer returns an Analyzer with core.Epsilon and a discard logger.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		eps:    core.Epsilon,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Essential returns reactions whose knockout growth is NaN or below epsilon.
// When the unconstrained growth is NaN nothing can be judged and the result
// is empty.
func (a *Analyzer) Essential(res Result, growth float64) []string {
	if math.IsNaN(growth) {
		return []string{}
	}
	return a.filter(res, func(g float64) bool {
		return math.IsNaN(g) || g < a.eps
	})
}

// GrowthEssential returns reactions whose knockout growth is NaN or falls
// below fraction of maxGrowth by more than epsilon.
//
// A fraction outside [0, 1] is logged as a warning and used as given.
func (a *Analyzer) GrowthEssential(res Result, maxGrowth, fraction float64) []string {
	if fraction < 0 || fraction > 1 {
		a.logger.Warn("growth fraction outside [0, 1]", "fraction", fraction)
	}
	threshold := maxGrowth * fraction
	return a.filter(res, func(g float64) bool {
		return math.IsNaN(g) || g+a.eps < threshold
	})
}

// OptimalGrowthEssential returns reactions whose knockout measurably reduces
// growth: NaN, below epsilon, or more than epsilon under maxGrowth.
func (a *Analyzer) OptimalGrowthEssential(res Result, maxGrowth float64) []string {
	return a.filter(res, func(g float64) bool {
		return math.IsNaN(g) || g < a.eps || g+a.eps < maxGrowth
	})
}

func (a *Analyzer) filter(res Result, essential func(float64) bool) []string {
	out := make([]string, 0)
	for rxn, g := range res {
		if essential(g) {
			out = append(out, rxn)
		}
	}
	sort.Strings(out)

	return out
}
