package deadend

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// ErrNetworkNil is returned when Remove is called with a nil network.
var ErrNetworkNil = errors.New("deadend: network is nil")

// Option configures Remove.
type Option func(*Options)

// Options holds the removal policy.
type Options struct {
	// Ctx allows cancellation between passes; defaults to context.Background().
	Ctx context.Context

	// DeleteBoundary deletes exchange, demand and sink reactions like any
	// other incomplete reaction. Default false.
	DeleteBoundary bool

	// KeepIncomplete protects reactions that already lacked reactants or
	// products before the first pass. Default true.
	KeepIncomplete bool

	// Logger receives one debug record per pass.
	Logger *slog.Logger

	// OnPass, if non-nil, is invoked after every pass with its 1-based index.
	OnPass func(pass int, removedMetabolites, removedReactions []string)
}

// DefaultOptions returns Options with a background context, boundary
// reactions protected and original incompleteness kept.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		DeleteBoundary: false,
		KeepIncomplete: true,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Ctx = ctx }
}

// WithDeleteBoundary sets whether boundary reactions may be deleted.
func WithDeleteBoundary(v bool) Option {
	return func(o *Options) { o.DeleteBoundary = v }
}

// WithKeepIncomplete sets whether originally incomplete reactions are kept.
func WithKeepIncomplete(v bool) Option {
	return func(o *Options) { o.KeepIncomplete = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnPass installs a per-pass hook.
func WithOnPass(fn func(pass int, removedMetabolites, removedReactions []string)) Option {
	return func(o *Options) { o.OnPass = fn }
}

// Report summarises one Remove call.
type Report struct {
	// Passes is the number of passes run, including the final no-op pass.
	Passes int

	// RemovedMetabolites and RemovedReactions list deleted ids in deletion order.
	RemovedMetabolites []string
	RemovedReactions   []string

	// Final is the dead-end map of the pruned network.
	Final Result
}
