package fba

import (
	"context"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/knockout"
)

// Oracle answers the optimization questions the analyses depend on. An
// Oracle never mutates the Network it is given.
type Oracle interface {
	// Growth returns the optimal objective flux. On failure it returns NaN
	// and ErrInfeasible, ErrUnbounded or a *SolverError.
	Growth(ctx context.Context, n *core.Network) (float64, error)

	// FluxVariability returns the min/max flux of every reaction while the
	// objective stays at or above fraction of its optimum.
	FluxVariability(ctx context.Context, n *core.Network, fraction float64, loopless bool) (map[string]core.FluxRange, error)

	// KnockoutEachReaction returns the growth with each reaction's flux
	// forced to zero in turn. Failed knockouts map to NaN.
	KnockoutEachReaction(ctx context.Context, n *core.Network) (knockout.Result, error)

	// EssentialGenes returns the sorted ids of genes whose single knockout
	// abolishes growth.
	EssentialGenes(ctx context.Context, n *core.Network) ([]string, error)
}
