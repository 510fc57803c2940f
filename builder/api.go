// SPDX-License-Identifier: MIT
// Package: metavuln/builder
//
// api.go - public entry point and constructors.
//
// Determinism: same options, seed and constructor order give identical
// networks. Constructors validate early and return sentinel errors.

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/metavuln/core"
)

// Constructor applies a deterministic network mutation.
type Constructor func(n *core.Network, cfg builderConfig) error

const (
	methodLinear     = "Linear"
	methodDeadBranch = "DeadBranch"
	methodRevLink    = "ReversibleLink"
	methodRandom     = "RandomSparse"
)

// BuildNetwork creates a Network, resolves bopts and applies cons in order.
// Errors are wrapped as "BuildNetwork: %w".
func BuildNetwork(id string, bopts []BuilderOption, cons ...Constructor) (*core.Network, error) {
	n := core.NewNetwork(id)
	cfg := newBuilderConfig(bopts...)
	for _, c := range cons {
		if err := c(n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}
	return n, nil
}

// ensureMet adds metabolite id in the configured compartment if missing.
func ensureMet(n *core.Network, cfg builderConfig, id string) error {
	if _, ok := n.Metabolite(id); ok {
		return nil
	}
	return n.AddMetabolite(core.Metabolite{ID: id, Name: id, Compartment: cfg.compartment})
}

// nextRxn returns the next free generated reaction id.
func nextRxn(n *core.Network, cfg builderConfig) string {
	for i := n.ReactionCount() + 1; ; i++ {
		id := cfg.rxnPrefix + strconv.Itoa(i)
		if _, taken := n.Reaction(id); !taken {
			return id
		}
	}
}

func addRxn(n *core.Network, id string, lo, hi float64, st map[string]float64) error {
	return n.AddReaction(core.Reaction{ID: id, Name: id, LowerBound: lo, UpperBound: hi}, st)
}

// Linear builds uptake -> M0 -> ... -> Mk -> sink. The sink becomes the
// objective when none is set. k >= 1.
func Linear(k int) Constructor {
	return func(n *core.Network, cfg builderConfig) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d: %w", methodLinear, k, ErrTooSmall)
		}
		for i := 0; i <= k; i++ {
			if err := ensureMet(n, cfg, cfg.met(i)); err != nil {
				return err
			}
		}
		if err := addRxn(n, "EX_"+cfg.met(0), cfg.lower, cfg.upper, map[string]float64{cfg.met(0): 1}); err != nil {
			return err
		}
		for i := 1; i <= k; i++ {
			st := map[string]float64{cfg.met(i - 1): -1, cfg.met(i): 1}
			if err := addRxn(n, nextRxn(n, cfg), cfg.lower, cfg.upper, st); err != nil {
				return err
			}
		}
		sink := "DM_" + cfg.met(k)
		if err := addRxn(n, sink, cfg.lower, cfg.upper, map[string]float64{cfg.met(k): -1}); err != nil {
			return err
		}
		if n.Objective() == "" {
			return n.SetObjective(sink)
		}
		return nil
	}
}

// DeadBranch hangs a chain of k reactions off metabolite index from. The
// last metabolite of the chain is produced only, so the whole branch is
// pruned by dead-end removal. k >= 1.
func DeadBranch(from, k int) Constructor {
	return func(n *core.Network, cfg builderConfig) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d: %w", methodDeadBranch, k, ErrTooSmall)
		}
		prev := cfg.met(from)
		if _, ok := n.Metabolite(prev); !ok {
			return fmt.Errorf("%s: %s: %w", methodDeadBranch, prev, ErrUnknownMetabolite)
		}
		for j := 1; j <= k; j++ {
			next := fmt.Sprintf("%s_d%d", cfg.met(from), j)
			if err := ensureMet(n, cfg, next); err != nil {
				return err
			}
			if err := addRxn(n, nextRxn(n, cfg), cfg.lower, cfg.upper, map[string]float64{prev: -1, next: 1}); err != nil {
				return err
			}
			prev = next
		}
		return nil
	}
}

// ReversibleLink adds a reversible reaction a <=> b between existing
// metabolite indices.
func ReversibleLink(a, b int) Constructor {
	return func(n *core.Network, cfg builderConfig) error {
		for _, i := range []int{a, b} {
			if _, ok := n.Metabolite(cfg.met(i)); !ok {
				return fmt.Errorf("%s: %s: %w", methodRevLink, cfg.met(i), ErrUnknownMetabolite)
			}
		}
		st := map[string]float64{cfg.met(a): -1, cfg.met(b): 1}
		return addRxn(n, nextRxn(n, cfg), -cfg.upper, cfg.upper, st)
	}
}

// RandomSparse adds m metabolites and r reactions with one or two reactants
// and one or two products each; roughly a third are reversible. Requires
// WithSeed. m >= 2, r >= 1.
func RandomSparse(m, r int) Constructor {
	return func(n *core.Network, cfg builderConfig) error {
		if m < 2 || r < 1 {
			return fmt.Errorf("%s: m=%d r=%d: %w", methodRandom, m, r, ErrTooSmall)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
		}
		for i := 0; i < m; i++ {
			if err := ensureMet(n, cfg, cfg.met(i)); err != nil {
				return err
			}
		}
		for k := 0; k < r; k++ {
			perm := cfg.rng.Perm(m)
			nIn, nOut := 1+cfg.rng.Intn(2), 1+cfg.rng.Intn(2)
			if nIn+nOut > m {
				nIn, nOut = 1, 1
			}
			st := make(map[string]float64, nIn+nOut)
			for _, i := range perm[:nIn] {
				st[cfg.met(i)] = -1
			}
			for _, i := range perm[nIn : nIn+nOut] {
				st[cfg.met(i)] = 1
			}
			lo := cfg.lower
			if cfg.rng.Intn(3) == 0 {
				lo = -cfg.upper
			}
			if err := addRxn(n, nextRxn(n, cfg), lo, cfg.upper, st); err != nil {
				return err
			}
		}
		return nil
	}
}
