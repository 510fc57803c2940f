// Package fbatest provides a scriptable fba.Oracle for tests.
package fbatest

import (
	"context"
	"math"
	"sync"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/knockout"
)

// Oracle is a deterministic fba.Oracle. Zero-valued hooks fall back to:
// Growth returns GrowthValue, FluxVariability returns every reaction's
// current bounds, KnockoutEachReaction returns Knockouts, EssentialGenes
// returns Genes. It is safe for concurrent use.
type Oracle struct {
	GrowthValue float64
	GrowthErr   error

	// FVAFunc overrides FluxVariability when set.
	FVAFunc func(n *core.Network, fraction float64) (map[string]core.FluxRange, error)

	Knockouts   knockout.Result
	KnockoutErr error

	Genes    []string
	GenesErr error

	mu    sync.Mutex
	calls map[string]int
}

var _ fba.Oracle = (*Oracle)(nil)

func (o *Oracle) count(op string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = make(map[string]int)
	}
	o.calls[op]++
}

// Calls returns how many times op was invoked.
func (o *Oracle) Calls(op string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls[op]
}

// Growth implements fba.Oracle.
func (o *Oracle) Growth(ctx context.Context, _ *core.Network) (float64, error) {
	o.count(fba.OpGrowth)
	if err := ctx.Err(); err != nil {
		return math.NaN(), err
	}
	if o.GrowthErr != nil {
		return math.NaN(), o.GrowthErr
	}
	return o.GrowthValue, nil
}

// FluxVariability implements fba.Oracle.
func (o *Oracle) FluxVariability(ctx context.Context, n *core.Network, fraction float64, loopless bool) (map[string]core.FluxRange, error) {
	o.count(fba.OpFluxVariability)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if loopless {
		return nil, fba.ErrLooplessUnsupported
	}
	if o.FVAFunc != nil {
		return o.FVAFunc(n, fraction)
	}
	out := make(map[string]core.FluxRange)
	for _, r := range n.Reactions() {
		out[r.ID] = core.FluxRange{Min: r.LowerBound, Max: r.UpperBound}
	}
	return out, nil
}

// KnockoutEachReaction implements fba.Oracle. Reactions missing from
// Knockouts report GrowthValue.
func (o *Oracle) KnockoutEachReaction(ctx context.Context, n *core.Network) (knockout.Result, error) {
	o.count(fba.OpKnockout)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.KnockoutErr != nil {
		return nil, o.KnockoutErr
	}
	out := make(knockout.Result)
	for _, id := range n.ReactionIDs() {
		g, ok := o.Knockouts[id]
		if !ok {
			g = o.GrowthValue
		}
		out[id] = g
	}
	return out, nil
}

// EssentialGenes implements fba.Oracle.
func (o *Oracle) EssentialGenes(ctx context.Context, _ *core.Network) ([]string, error) {
	o.count(fba.OpEssentialGenes)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.GenesErr != nil {
		return nil, o.GenesErr
	}
	return append([]string{}, o.Genes...), nil
}
