package fba

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/knockout"
	"github.com/katalvlaran/metavuln/matrix"
)

// Operation labels passed to observers.
const (
	OpGrowth          = "growth"
	OpFluxVariability = "flux_variability"
	OpKnockout        = "knockout"
	OpEssentialGenes  = "essential_genes"
)

// Observer receives the duration and outcome of every Oracle call.
type Observer func(op string, elapsed time.Duration, err error)

// Option configures a Simplex oracle.
type Option func(*Simplex)

// WithTolerance sets the simplex pivot tolerance (default 1e-10).
func WithTolerance(tol float64) Option {
	return func(s *Simplex) { s.tol = tol }
}

// WithBoundCap sets the magnitude infinite bounds are clamped to (default 1e6).
func WithBoundCap(limit float64) Option {
	return func(s *Simplex) { s.limit = limit }
}

// WithGeneThreshold sets the fraction of wild-type growth below which a gene
// knockout counts as lethal (default 0.01).
func WithGeneThreshold(f float64) Option {
	return func(s *Simplex) { s.geneThreshold = f }
}

// WithObserver installs a call observer.
func WithObserver(o Observer) Option {
	return func(s *Simplex) { s.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simplex) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simplex is an Oracle backed by gonum's simplex solver. It is stateless
// between calls and safe for concurrent use.
type Simplex struct {
	tol           float64
	limit         float64
	geneThreshold float64
	observer      Observer
	logger        *slog.Logger
}

var _ Oracle = (*Simplex)(nil)

// NewSimplex returns a Simplex oracle with default settings.
func NewSimplex(opts ...Option) *Simplex {
	s := &Simplex{
		tol:           1e-10,
		limit:         1e6,
		geneThreshold: 0.01,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simplex) observe(op string, start time.Time, err error) {
	if s.observer != nil {
		s.observer(op, time.Since(start), err)
	}
}

// Growth implements Oracle.
func (s *Simplex) Growth(ctx context.Context, n *core.Network) (g float64, err error) {
	defer func(start time.Time) { s.observe(OpGrowth, start, err) }(time.Now())

	if err = ctx.Err(); err != nil {
		return math.NaN(), err
	}
	p, err := newProblem(n, matrix.DefaultRankTol)
	if err != nil {
		return math.NaN(), err
	}
	return s.maximize(p, p.lower, p.upper, nil)
}

// maximize returns the optimal objective flux for the given raw bounds.
// A solution resting on a clamped bound is re-solved with a wider clamp; if
// the optimum moves, the model is unbounded.
func (s *Simplex) maximize(p *problem, lower, upper []float64, floors []floor) (float64, error) {
	c := unitObjective(len(p.cols), p.obj, -1)

	lo, hi, capped := capBounds(lower, upper, s.limit)
	v, err := p.solve(c, lo, hi, floors, s.tol)
	if err != nil {
		return math.NaN(), err
	}
	best := v[p.obj]
	if !atCap(v, lo, hi, capped, s.limit) {
		return best, nil
	}

	wide := s.limit * 100
	lo, hi, _ = capBounds(lower, upper, wide)
	v, err = p.solve(c, lo, hi, floors, s.tol)
	if err != nil {
		return math.NaN(), err
	}
	if v[p.obj] > best+1e-6*math.Max(1, math.Abs(best)) {
		return math.NaN(), ErrUnbounded
	}
	return best, nil
}

// FluxVariability implements Oracle. The objective is held at or above
// fraction of its optimum; a flux resting on a clamped bound is reported as
// ±Inf.
func (s *Simplex) FluxVariability(ctx context.Context, n *core.Network, fraction float64, loopless bool) (out map[string]core.FluxRange, err error) {
	defer func(start time.Time) { s.observe(OpFluxVariability, start, err) }(time.Now())

	if loopless {
		return nil, ErrLooplessUnsupported
	}
	p, err := newProblem(n, matrix.DefaultRankTol)
	if err != nil {
		return nil, err
	}
	optimum, err := s.maximize(p, p.lower, p.upper, nil)
	if err != nil {
		return nil, err
	}

	objFloor := floor{
		coef: unitObjective(len(p.cols), p.obj, 1),
		rhs:  fraction*optimum - 1e-9*math.Max(1, math.Abs(optimum)),
	}
	lo, hi, _ := capBounds(p.lower, p.upper, s.limit)
	out = make(map[string]core.FluxRange, len(p.cols))
	for j, id := range p.cols {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		var fr core.FluxRange
		for _, sign := range []float64{1, -1} {
			v, serr := p.solve(unitObjective(len(p.cols), j, sign), lo, hi, []floor{objFloor}, s.tol)
			if serr != nil {
				return nil, serr
			}
			val := v[j]
			switch {
			case sign > 0 && math.IsInf(p.lower[j], -1) && val <= -s.limit*(1-1e-6):
				val = math.Inf(-1)
			case sign < 0 && math.IsInf(p.upper[j], 1) && val >= s.limit*(1-1e-6):
				val = math.Inf(1)
			}
			if sign > 0 {
				fr.Min = val
			} else {
				fr.Max = val
			}
		}
		out[id] = fr
	}
	s.logger.Debug("flux variability done", "model", n.ID(), "fraction", fraction, "reactions", len(out))

	return out, nil
}

// KnockoutEachReaction implements Oracle. Cancellation is checked before
// every knockout; a cancelled call returns no partial result.
func (s *Simplex) KnockoutEachReaction(ctx context.Context, n *core.Network) (out knockout.Result, err error) {
	defer func(start time.Time) { s.observe(OpKnockout, start, err) }(time.Now())

	p, err := newProblem(n, matrix.DefaultRankTol)
	if err != nil {
		return nil, err
	}
	lower := append([]float64(nil), p.lower...)
	upper := append([]float64(nil), p.upper...)
	out = make(knockout.Result, len(p.cols))
	for j, id := range p.cols {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		lower[j], upper[j] = 0, 0
		g, serr := s.maximize(p, lower, upper, nil)
		if serr != nil {
			g = math.NaN()
		}
		out[id] = g
		lower[j], upper[j] = p.lower[j], p.upper[j]
	}
	s.logger.Debug("reaction knockouts done", "model", n.ID(), "reactions", len(out))

	return out, nil
}

// EssentialGenes implements Oracle. A gene is essential when blocking every
// reaction its knockout disables drops growth below the gene threshold times
// wild-type growth, or makes the model infeasible.
func (s *Simplex) EssentialGenes(ctx context.Context, n *core.Network) (out []string, err error) {
	defer func(start time.Time) { s.observe(OpEssentialGenes, start, err) }(time.Now())

	p, err := newProblem(n, matrix.DefaultRankTol)
	if err != nil {
		return nil, err
	}
	wild, err := s.maximize(p, p.lower, p.upper, nil)
	if err != nil {
		return nil, err
	}
	threshold := wild * s.geneThreshold

	genes := make([]string, 0)
	for _, g := range n.Genes() {
		genes = append(genes, g.ID)
	}
	disabled, err := knockout.GeneReactions(n, genes)
	if err != nil {
		return nil, err
	}

	out = make([]string, 0)
	for _, gene := range genes {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if len(disabled[gene]) == 0 {
			continue
		}
		lower := append([]float64(nil), p.lower...)
		upper := append([]float64(nil), p.upper...)
		for _, rxn := range disabled[gene] {
			j := p.colIndex[rxn]
			lower[j], upper[j] = 0, 0
		}
		g, serr := s.maximize(p, lower, upper, nil)
		if serr != nil || g < threshold {
			out = append(out, gene)
		}
	}
	sort.Strings(out)

	return out, nil
}
