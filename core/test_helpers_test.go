// Package core_test contains test helpers for metavuln/core.
//
// Purpose:
//   - Provide small, deterministic network fixtures.
//   - Keep fixture construction failures fatal and out of test bodies.

package core_test

import (
	"testing"

	"github.com/katalvlaran/metavuln/core"
)

// Common identifiers used across core tests.
const (
	MetA = "A"
	MetB = "B"
	MetC = "C"

	RxnUptake = "EX_A"
	Rxn1      = "R1"
	Rxn2      = "R2"
	RxnSink   = "R3"

	CompCytosol = "c"
	CompExtra   = "e"
)

// Common bounds used across core tests.
const (
	Bound0    = 0.0
	Bound1000 = 1000.0
)

// MustAddMetabolite adds a metabolite or fails the test.
func MustAddMetabolite(t *testing.T, n *core.Network, id, comp string) {
	t.Helper()
	if err := n.AddMetabolite(core.Metabolite{ID: id, Name: id, Compartment: comp}); err != nil {
		t.Fatalf("AddMetabolite(%q): %v", id, err)
	}
}

// MustAddReaction adds a reaction or fails the test.
func MustAddReaction(t *testing.T, n *core.Network, id string, lo, hi float64, st map[string]float64) {
	t.Helper()
	if err := n.AddReaction(core.Reaction{ID: id, Name: id, LowerBound: lo, UpperBound: hi}, st); err != nil {
		t.Fatalf("AddReaction(%q): %v", id, err)
	}
}

// NewLinearNetwork RETURNS EX_A: -> A, R1: A -> B, R2: B <=> C, R3: C -> .
// A is in the extracellular compartment, B and C in the cytosol.
func NewLinearNetwork(t *testing.T) *core.Network {
	t.Helper()
	n := core.NewNetwork("linear")
	MustAddMetabolite(t, n, MetA, CompExtra)
	MustAddMetabolite(t, n, MetB, CompCytosol)
	MustAddMetabolite(t, n, MetC, CompCytosol)
	MustAddReaction(t, n, RxnUptake, Bound0, Bound1000, map[string]float64{MetA: 1})
	MustAddReaction(t, n, Rxn1, Bound0, Bound1000, map[string]float64{MetA: -1, MetB: 1})
	MustAddReaction(t, n, Rxn2, -Bound1000, Bound1000, map[string]float64{MetB: -1, MetC: 2})
	MustAddReaction(t, n, RxnSink, Bound0, Bound1000, map[string]float64{MetC: -1})
	if err := n.SetObjective(RxnSink); err != nil {
		t.Fatalf("SetObjective: %v", err)
	}

	return n
}
