package pipeline

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/metavuln/snapshot"
)

// Stage labels in execution order.
const (
	StageInitial = "initial"
	StageDEM     = "dem"
	StageFVA     = "fva"
	StageFVADEM  = "fva_dem"
)

// Stages lists the stage labels in execution order.
var Stages = []string{StageInitial, StageDEM, StageFVA, StageFVADEM}

// Option configures CriticalPoints.
type Option func(*Options)

// Options holds the CriticalPoints parameters.
type Options struct {
	// Fraction of optimal growth kept during flux variability. Default 1.0.
	Fraction float64

	// Logger receives progress messages. Default discards.
	Logger *slog.Logger

	// Observer, if non-nil, is called once per finished stage.
	Observer func(stage string, elapsed time.Duration, err error)
}

// DefaultOptions returns Fraction 1.0, a discard logger and no observer.
func DefaultOptions() Options {
	return Options{
		Fraction: 1.0,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithFraction sets the flux variability growth fraction.
func WithFraction(f float64) Option {
	return func(o *Options) { o.Fraction = f }
}

// WithLogger sets the progress logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs a per-stage completion hook.
func WithObserver(fn func(stage string, elapsed time.Duration, err error)) Option {
	return func(o *Options) { o.Observer = fn }
}

// Result holds the snapshots of a run.
type Result struct {
	// Model is the id of the loaded network.
	Model string

	// Snapshots maps a stage label to its snapshot. Stages not reached
	// because of cancellation are absent.
	Snapshots map[string]*snapshot.Snapshot

	// Errors maps a stage label to the first solver failure of that stage.
	Errors map[string]string
}

// Stage returns the snapshot of one stage, or nil.
func (r *Result) Stage(name string) *snapshot.Snapshot {
	return r.Snapshots[name]
}

// Ordered returns the snapshots present, in stage order.
func (r *Result) Ordered() []*snapshot.Snapshot {
	out := make([]*snapshot.Snapshot, 0, len(Stages))
	for _, st := range Stages {
		if s, ok := r.Snapshots[st]; ok {
			out = append(out, s)
		}
	}
	return out
}
