package fba

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/matrix"
)

// problem is the LP skeleton of one Network: reduced steady-state block,
// raw bounds and objective column. Bounds are copied per solve, so one
// problem serves every knockout and FVA step.
type problem struct {
	cols     []string
	colIndex map[string]int
	obj      int
	eq       mat.Matrix // nil when no metabolite takes part in a reaction
	eqRows   int
	lower    []float64
	upper    []float64
}

// floor is an extra inequality coef·v >= rhs.
type floor struct {
	coef []float64
	rhs  float64
}

func newProblem(n *core.Network, rankTol float64) (*problem, error) {
	objective := n.Objective()
	if objective == "" {
		return nil, ErrNoObjective
	}

	p := &problem{}
	s, err := matrix.NewStoichiometric(n)
	switch {
	case err == nil:
		red, _ := s.Reduced(rankTol)
		p.eq = red
		p.eqRows, _ = red.Dims()
		p.cols = s.Cols
	case errors.Is(err, matrix.ErrBadShape):
		p.cols = n.ReactionIDs()
	default:
		return nil, err
	}

	p.colIndex = make(map[string]int, len(p.cols))
	p.lower = make([]float64, len(p.cols))
	p.upper = make([]float64, len(p.cols))
	for j, id := range p.cols {
		p.colIndex[id] = j
		r, _ := n.Reaction(id)
		p.lower[j], p.upper[j] = r.LowerBound, r.UpperBound
	}
	obj, ok := p.colIndex[objective]
	if !ok {
		return nil, fmt.Errorf("newProblem: %q: %w", objective, core.ErrReactionNotFound)
	}
	p.obj = obj

	return p, nil
}

// capBounds clamps infinite bounds to ±limit and reports which columns were clamped.
func capBounds(lower, upper []float64, limit float64) (lo, hi []float64, capped []bool) {
	lo = make([]float64, len(lower))
	hi = make([]float64, len(upper))
	capped = make([]bool, len(lower))
	for j := range lower {
		lo[j], hi[j] = lower[j], upper[j]
		if lo[j] < -limit {
			lo[j], capped[j] = -limit, true
		}
		if hi[j] > limit {
			hi[j], capped[j] = limit, true
		}
	}
	return lo, hi, capped
}

// solve minimises c·v under the problem constraints, the given bounds and
// optional floors, and returns v.
func (p *problem) solve(c, lower, upper []float64, floors []floor, tol float64) ([]float64, error) {
	nv := len(p.cols)
	nIneq := 2*nv + len(floors)

	g := mat.NewDense(nIneq, nv, nil)
	h := make([]float64, nIneq)
	for j := 0; j < nv; j++ {
		g.Set(2*j, j, 1)
		h[2*j] = upper[j]
		g.Set(2*j+1, j, -1)
		h[2*j+1] = -lower[j]
	}
	for k, f := range floors {
		row := 2*nv + k
		for j, v := range f.coef {
			if v != 0 {
				g.Set(row, j, -v)
			}
		}
		h[row] = -f.rhs
	}

	var a mat.Matrix
	var b []float64
	if p.eq != nil {
		a = p.eq
		b = make([]float64, p.eqRows)
	}

	cNew, aNew, bNew := lp.Convert(c, g, h, a, b)
	_, x, err := lp.Simplex(cNew, aNew, bNew, tol, nil)
	if err != nil {
		return nil, translate(err)
	}

	v := make([]float64, nv)
	for j := range v {
		v[j] = x[j] - x[nv+j]
	}
	return v, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return ErrUnbounded
	default:
		return &SolverError{Op: "simplex", Err: err}
	}
}

// atCap reports whether any clamped column sits on its clamped bound.
func atCap(v, lo, hi []float64, capped []bool, limit float64) bool {
	slack := 1e-6 * limit
	for j, c := range capped {
		if !c {
			continue
		}
		if (lo[j] == -limit && v[j] <= -limit+slack) || (hi[j] == limit && v[j] >= limit-slack) {
			return true
		}
	}
	return false
}

func unitObjective(n, j int, sign float64) []float64 {
	c := make([]float64, n)
	c[j] = sign
	return c
}
