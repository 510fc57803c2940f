package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/deadend"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/snapshot"
)

// CriticalPoints loads the model, runs the four stages and returns their
// snapshots. Loader errors are returned unchanged. A cancelled ctx returns
// the partial Result together with ctx.Err().
//
// Complexity: O(R) oracle solves per stage for the reaction knockouts, plus
// O(G) for essential genes and O(R) for flux variability.
func CriticalPoints(ctx context.Context, load analysis.Loader, oracle fba.Oracle, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	net, err := load(ctx)
	if err != nil {
		return nil, err
	}
	r := &run{
		ctx:    ctx,
		oracle: oracle,
		opts:   o,
		res: &Result{
			Model:     net.ID(),
			Snapshots: make(map[string]*snapshot.Snapshot, len(Stages)),
			Errors:    make(map[string]string),
		},
	}

	// Stage 1: initial
	sess := r.session(net)
	if err := r.stage(StageInitial, sess, func() error {
		sess.FindDeadEnds(deadend.All)
		sess.FindChokepoints(true)
		return r.analyse(sess)
	}); err != nil {
		return r.res, err
	}

	// Stage 2: dead ends removed
	if err := r.stage(StageDEM, sess, func() error {
		return r.pruneAndAnalyse(sess)
	}); err != nil {
		return r.res, err
	}

	// Stage 3: flux variability on a fresh copy
	fresh, err := load(ctx)
	if err != nil {
		return r.res, err
	}
	sess = r.session(fresh)
	r.opts.Logger.Info("running flux variability", "model", r.res.Model, "fraction", o.Fraction)
	if err := sess.RunFVA(ctx, o.Fraction, true); err != nil {
		if ctx.Err() != nil {
			return r.res, ctx.Err()
		}
		msg := "Couldn't run Flux Variability Analysis: " + analysis.Describe(err)
		o.Logger.Warn("flux variability failed", "model", r.res.Model, "fraction", o.Fraction, "err", msg)
		for _, st := range []string{StageFVA, StageFVADEM} {
			r.res.Errors[st] = msg
			r.res.Snapshots[st] = snapshot.Build(st, sess)
			r.observe(st, 0, err)
		}
		return r.res, nil
	}
	if err := r.stage(StageFVA, sess, func() error {
		sess.FindDeadEnds(deadend.All)
		sess.FindChokepoints(true)
		return r.analyse(sess)
	}); err != nil {
		return r.res, err
	}

	// Stage 4: flux variability and dead ends removed
	if err := r.stage(StageFVADEM, sess, func() error {
		return r.pruneAndAnalyse(sess)
	}); err != nil {
		return r.res, err
	}

	return r.res, nil
}

// run carries the state shared by the stages of one CriticalPoints call.
type run struct {
	ctx    context.Context
	oracle fba.Oracle
	opts   Options
	res    *Result

	current     string
	stageErr    error
	genesFailed bool
}

// session wraps n in a fresh analysis session. Gene search is retried on
// every freshly loaded network.
func (r *run) session(n *core.Network) *analysis.Session {
	r.genesFailed = false
	return analysis.New(n, r.oracle, analysis.WithLogger(r.opts.Logger))
}

// stage runs body and, unless it returned a fatal error, freezes sess.
func (r *run) stage(name string, sess *analysis.Session, body func() error) error {
	start := time.Now()
	r.current, r.stageErr = name, nil
	r.opts.Logger.Info("stage started", "stage", name, "model", r.res.Model)

	if err := body(); err != nil {
		r.observe(name, time.Since(start), err)
		return err
	}
	r.res.Snapshots[name] = snapshot.Build(name, sess)

	elapsed := time.Since(start)
	r.opts.Logger.Info("stage finished",
		"stage", name,
		"model", r.res.Model,
		"reactions", sess.Network().ReactionCount(),
		"elapsed", elapsed)
	r.observe(name, elapsed, r.stageErr)

	return nil
}

func (r *run) observe(stage string, elapsed time.Duration, err error) {
	if r.opts.Observer != nil {
		r.opts.Observer(stage, elapsed, err)
	}
}

// note records a solver failure for the current stage and swallows it.
// Context errors are returned as fatal.
func (r *run) note(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := r.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if r.stageErr == nil {
		r.stageErr = err
		r.res.Errors[r.current] = prefix + analysis.Describe(err)
	}
	r.opts.Logger.Warn("stage step failed", "stage", r.current, "err", prefix+analysis.Describe(err))

	return nil
}

// analyse computes the oracle-backed results of the current network.
func (r *run) analyse(sess *analysis.Session) error {
	if err := r.note("Couldn't compute knockouts: ", sess.KnockoutReactions(r.ctx)); err != nil {
		return err
	}
	if msg := sess.LastError(analysis.OpGrowth); msg != "" && r.stageErr == nil {
		r.stageErr = errors.New(msg)
		r.res.Errors[r.current] = "Couldn't compute growth: " + msg
	}
	if err := r.note("", sess.ComputeEssentialReactions(r.ctx)); err != nil {
		return err
	}
	if r.genesFailed {
		return nil
	}
	if err := sess.FindEssentialGenes(r.ctx); err != nil {
		r.genesFailed = true
		return r.note("Couldn't find essential genes: ", err)
	}

	return r.note("", sess.FindEssentialGeneReactions())
}

func (r *run) pruneAndAnalyse(sess *analysis.Session) error {
	if _, err := sess.RemoveDeadEnds(r.ctx); err != nil {
		return err
	}
	sess.FindChokepoints(true)
	return r.analyse(sess)
}
