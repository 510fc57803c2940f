package core

import (
	"fmt"
	"sort"
)

// Direction classifies the current bounds of a reaction.
// Returns ErrReactionNotFound for unknown ids.
func (n *Network) Direction(rxnID string) (Direction, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	r, ok := n.reactions[rxnID]
	if !ok {
		return Forward, fmt.Errorf("Direction: %q: %w", rxnID, ErrReactionNotFound)
	}
	return Classify(r.LowerBound, r.UpperBound), nil
}

// IsDead reports whether the reaction is blocked (both bounds ~0).
// Unknown reactions are reported as not dead.
func (n *Network) IsDead(rxnID string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	r, ok := n.reactions[rxnID]
	return ok && IsDeadBounds(r.LowerBound, r.UpperBound)
}

// ReversibleReactions returns the sorted ids of Reversible reactions.
func (n *Network) ReversibleReactions() []string {
	return n.filterReactions(func(r *Reaction) bool {
		return Classify(r.LowerBound, r.UpperBound) == Reversible
	})
}

// DeadReactions returns the sorted ids of blocked reactions.
func (n *Network) DeadReactions() []string {
	return n.filterReactions(func(r *Reaction) bool {
		return IsDeadBounds(r.LowerBound, r.UpperBound)
	})
}

// FluxRoles returns the metabolites a reaction consumes and produces given
// its current direction. Reversible reactions both consume and produce every
// participant; Backward reactions swap the stoichiometric sides.
func (n *Network) FluxRoles(rxnID string) (consumed, produced []string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	r, ok := n.reactions[rxnID]
	if !ok {
		return nil, nil
	}
	reactants, products := n.sideLocked(rxnID, -1), n.sideLocked(rxnID, +1)
	switch Classify(r.LowerBound, r.UpperBound) {
	case Reversible:
		all := append(append(make([]string, 0, len(reactants)+len(products)), reactants...), products...)
		sort.Strings(all)
		return all, append([]string(nil), all...)
	case Backward:
		return products, reactants
	default:
		return reactants, products
	}
}

// IncompleteReactions returns the sorted ids of reactions with no reactants
// or no products.
func (n *Network) IncompleteReactions() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0)
	for id := range n.reactions {
		if len(n.sideLocked(id, -1)) == 0 || len(n.sideLocked(id, +1)) == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

// BoundaryReactions returns the sorted ids of exchange, demand and sink
// reactions: at most one participating metabolite. A boundary reaction
// stripped of its metabolite stays a boundary reaction.
func (n *Network) BoundaryReactions() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0)
	for id, row := range n.stoich {
		if len(row) <= 1 {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

func (n *Network) filterReactions(keep func(*Reaction) bool) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0)
	for id, r := range n.reactions {
		if keep(r) {
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}
