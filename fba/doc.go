// Package fba is the optimization oracle of metavuln: flux balance analysis,
// flux variability analysis, single reaction knockouts and essential genes.
//
// Every problem is the linear program
//
//	maximise   v[objective]
//	subject to S·v = 0
//	           lower <= v <= upper
//
// solved with the simplex method of gonum (optimize/convex/lp). Infinite
// bounds are capped at a large finite value; a solution resting on a capped
// bound is re-solved with a wider cap to tell a genuinely unbounded model
// from a large finite optimum.
//
// The Oracle interface is what the rest of metavuln depends on, so analyses
// can be driven by the Simplex implementation or by any other solver.
package fba
