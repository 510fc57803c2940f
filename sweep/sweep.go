package sweep

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
)

// ErrCancelled marks rows that were not computed because the run stopped.
var ErrCancelled = errors.New("sweep: cancelled")

// Run executes the sweep. Loader errors and context cancellation are
// returned; on cancellation the partial Result is returned too, with the
// rows that never ran marked by ErrCancelled's text.
//
// Implementation:
//   - Stage 1: Load once; knock out every reaction, classify, find
//     chokepoints and derive the growth-essential set per fraction.
//   - Stage 2: For every fraction, in an errgroup bounded by Parallelism,
//     reload, run flux variability with bound update and classify.
//   - Stage 3: Blocked is the dead set of the 0.0 row.
func Run(ctx context.Context, load analysis.Loader, oracle fba.Oracle, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Stage 1: initial network
	start := time.Now()
	net, err := load(ctx)
	if err != nil {
		return nil, err
	}
	sess := analysis.New(net, oracle, analysis.WithLogger(o.Logger))
	res := &Result{
		Model:        net.ID(),
		Reactions:    net.ReactionIDs(),
		Metabolites:  net.MetaboliteIDs(),
		Compartments: net.Compartments(),
		Rows:         make([]Row, len(o.Fractions)+1),
		Blocked:      []string{},
	}
	for _, g := range net.Genes() {
		res.Genes = append(res.Genes, g.ID)
	}
	for i := range res.Rows[1:] {
		res.Rows[i+1] = Row{Label: label(o.Fractions[i]), Fraction: o.Fractions[i], Err: ErrCancelled.Error()}
	}

	o.Logger.Info("computing essential reactions", "model", res.Model)
	if err := sess.ComputeEssentialReactions(ctx); err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		o.Logger.Warn("knockouts failed", "model", res.Model, "err", analysis.Describe(err))
	}
	res.Essential, _ = sess.EssentialReactions()
	if err := sess.FindOptimalGrowthEssentialReactions(ctx); err != nil && ctx.Err() != nil {
		return res, ctx.Err()
	}
	res.OptimalEssential, _ = sess.OptimalGrowthEssentialReactions()

	initial := classify(sess)
	initial.Label, initial.Fraction = InitialLabel, math.NaN()
	initial.EssentialReactions = res.Essential
	res.Rows[0] = initial
	observe(o, math.NaN(), time.Since(start), nil)

	growthEssential := make([][]string, len(o.Fractions))
	for i, f := range o.Fractions {
		if err := sess.FindGrowthEssentialReactions(ctx, f); err != nil && ctx.Err() != nil {
			return res, ctx.Err()
		}
		growthEssential[i], _ = sess.GrowthEssentialReactions()
	}

	// Stage 2: one fresh network per fraction
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Parallelism)
	for i, f := range o.Fractions {
		g.Go(func() error {
			row, err := runFraction(gctx, load, oracle, o, f)
			if err != nil {
				return err
			}
			row.EssentialReactions = growthEssential[i]
			res.Rows[i+1] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	// Stage 3: blocked reactions
	for _, row := range res.Rows[1:] {
		if row.Fraction == 0 && !row.Failed() {
			res.Blocked = row.Dead
		}
	}

	return res, nil
}

// runFraction computes one fraction row. Solver failures become the row's
// error marker; loader and context errors are returned.
func runFraction(ctx context.Context, load analysis.Loader, oracle fba.Oracle, o Options, f float64) (Row, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Row{}, err
	}
	net, err := load(ctx)
	if err != nil {
		return Row{}, err
	}
	sess := analysis.New(net, oracle, analysis.WithLogger(o.Logger))

	o.Logger.Info("running flux variability", "model", net.ID(), "fraction", f)
	if err := sess.RunFVA(ctx, f, true); err != nil {
		if ctx.Err() != nil {
			return Row{}, ctx.Err()
		}
		msg := "Error running FVA: " + analysis.Describe(err)
		o.Logger.Warn("could not run flux variability", "model", net.ID(), "fraction", f, "err", msg)
		observe(o, f, time.Since(start), err)
		return Row{
			Label:         label(f),
			Fraction:      f,
			Reversible:    []string{},
			Dead:          []string{},
			NonReversible: []string{},
			Chokepoints:   []string{},
			FVA:           map[string]core.FluxRange{},
			Err:           msg,
		}, nil
	}

	row := classify(sess)
	row.Label, row.Fraction = label(f), f
	row.FVA, _ = sess.FVA()
	observe(o, f, time.Since(start), nil)

	return row, nil
}

// classify fills the structural sets of a row from the live network.
func classify(sess *analysis.Session) Row {
	sess.FindChokepoints(true)
	cps, _ := sess.ChokepointReactions()
	return Row{
		Reversible:    sess.ReversibleReactions(),
		Dead:          sess.DeadReactions(),
		NonReversible: sess.NonReversibleReactions(),
		Chokepoints:   cps,
	}
}

func label(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func observe(o Options, f float64, elapsed time.Duration, err error) {
	if o.Observer != nil {
		o.Observer(f, elapsed, err)
	}
}
