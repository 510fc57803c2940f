package sweep

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/metavuln/core"
)

// Fractions is the growth fraction series, ascending.
var Fractions = []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.99, 1.0}

// InitialLabel labels the row of the unconstrained network.
const InitialLabel = "Initial"

// Row is one line of the sweep table.
type Row struct {
	// Label is InitialLabel or the fraction formatted with strconv 'g'.
	Label string `json:"label"`

	// Fraction is NaN for the initial row.
	Fraction float64 `json:"-"`

	Reversible    []string `json:"reversible"`
	Dead          []string `json:"dead"`
	NonReversible []string `json:"non_reversible"`
	Chokepoints   []string `json:"chokepoints"`

	// EssentialReactions holds the knockout-essential reactions on the
	// initial row and the growth-essential reactions at Fraction otherwise.
	EssentialReactions []string `json:"essential_reactions"`

	FVA map[string]core.FluxRange `json:"-"`

	// Err is non-empty when the row could not be computed.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the row carries an error marker.
func (r Row) Failed() bool {
	return r.Err != ""
}

// Result is the full sweep.
type Result struct {
	Model        string   `json:"model"`
	Reactions    []string `json:"reactions"`
	Metabolites  []string `json:"metabolites"`
	Genes        []string `json:"genes"`
	Compartments []string `json:"compartments"`

	// Essential and OptimalEssential are derived from the initial knockouts.
	Essential        []string `json:"essential"`
	OptimalEssential []string `json:"optimal_essential"`

	// Rows holds the initial row followed by one row per fraction.
	Rows []Row `json:"rows"`

	// Blocked is the dead set of the fraction 0.0 row.
	Blocked []string `json:"blocked"`
}

// Option configures Run.
type Option func(*Options)

// Options holds the Run parameters.
type Options struct {
	// Fractions overrides the fraction series. Default Fractions.
	Fractions []float64

	// Parallelism bounds the number of rows computed at once. Default 1.
	Parallelism int

	// Logger receives progress messages. Default discards.
	Logger *slog.Logger

	// Observer, if non-nil, is called after every row with the row's
	// fraction (NaN for the initial row).
	Observer func(fraction float64, elapsed time.Duration, err error)
}

// DefaultOptions returns the standard series, sequential execution and a
// discard logger.
func DefaultOptions() Options {
	return Options{
		Fractions:   Fractions,
		Parallelism: 1,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithParallelism sets how many fractions run concurrently. Values below 1
// are ignored.
func WithParallelism(k int) Option {
	return func(o *Options) {
		if k >= 1 {
			o.Parallelism = k
		}
	}
}

// WithFractions replaces the fraction series.
func WithFractions(fs ...float64) Option {
	return func(o *Options) { o.Fractions = append([]float64(nil), fs...) }
}

// WithLogger sets the progress logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs a per-row completion hook.
// It may be called concurrently when Parallelism > 1.
func WithObserver(fn func(fraction float64, elapsed time.Duration, err error)) Option {
	return func(o *Options) { o.Observer = fn }
}
