// Package core: Network mutation methods.
//
// Every method validates its whole input before taking the write lock, so a
// failed call leaves the Network untouched and a successful call is observed
// by readers as one step.

package core

import (
	"fmt"
	"math"
)

// ID returns the model identifier.
func (n *Network) ID() string {
	return n.id
}

// AddCompartment registers a compartment label with an optional display name.
// Re-adding an existing label updates its name.
func (n *Network) AddCompartment(id, name string) error {
	if id == "" {
		return fmt.Errorf("AddCompartment: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.compartments[id] = name

	return nil
}

// AddMetabolite inserts a metabolite. Its compartment is registered
// implicitly if unknown.
// Returns ErrEmptyID or ErrDuplicateID.
// Complexity: O(1).
func (n *Network) AddMetabolite(m Metabolite) error {
	if m.ID == "" {
		return fmt.Errorf("AddMetabolite: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.metabolites[m.ID]; exists {
		return fmt.Errorf("AddMetabolite: %q: %w", m.ID, ErrDuplicateID)
	}
	cp := m
	n.metabolites[m.ID] = &cp
	n.metRxns[m.ID] = make(map[string]struct{})
	if _, ok := n.compartments[m.Compartment]; !ok && m.Compartment != "" {
		n.compartments[m.Compartment] = ""
	}

	return nil
}

// AddGene inserts a gene.
// Returns ErrEmptyID or ErrDuplicateID.
func (n *Network) AddGene(g Gene) error {
	if g.ID == "" {
		return fmt.Errorf("AddGene: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.genes[g.ID]; exists {
		return fmt.Errorf("AddGene: %q: %w", g.ID, ErrDuplicateID)
	}
	cp := g
	n.genes[g.ID] = &cp
	n.geneRxns[g.ID] = make(map[string]struct{})

	return nil
}

// AddReaction inserts a reaction with its stoichiometry. Negative
// coefficients mark reactants, positive ones products.
//
// Returns ErrEmptyID, ErrDuplicateID, ErrInvalidBounds,
// ErrInvalidCoefficient or ErrMetaboliteNotFound.
// Complexity: O(k) for k participating metabolites.
func (n *Network) AddReaction(r Reaction, stoichiometry map[string]float64) error {
	// 1) Scalar validation
	if r.ID == "" {
		return fmt.Errorf("AddReaction: %w", ErrEmptyID)
	}
	if err := checkBounds(r.LowerBound, r.UpperBound); err != nil {
		return fmt.Errorf("AddReaction: %q: %w", r.ID, err)
	}
	for met, coef := range stoichiometry {
		if coef == 0 || math.IsNaN(coef) {
			return fmt.Errorf("AddReaction: %q: %s: %w", r.ID, met, ErrInvalidCoefficient)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// 2) Referential validation
	if _, exists := n.reactions[r.ID]; exists {
		return fmt.Errorf("AddReaction: %q: %w", r.ID, ErrDuplicateID)
	}
	for met := range stoichiometry {
		if _, ok := n.metabolites[met]; !ok {
			return fmt.Errorf("AddReaction: %q: %s: %w", r.ID, met, ErrMetaboliteNotFound)
		}
	}

	// 3) Insert entity and relation rows
	cp := r
	n.reactions[r.ID] = &cp
	row := make(map[string]float64, len(stoichiometry))
	for met, coef := range stoichiometry {
		row[met] = coef
		n.metRxns[met][r.ID] = struct{}{}
	}
	n.stoich[r.ID] = row
	n.rxnGenes[r.ID] = make(map[string]struct{})

	return nil
}

// LinkGene records that the rule of reaction rxnID references gene geneID.
// Linking twice is a no-op.
func (n *Network) LinkGene(geneID, rxnID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.genes[geneID]; !ok {
		return fmt.Errorf("LinkGene: %q: %w", geneID, ErrGeneNotFound)
	}
	if _, ok := n.reactions[rxnID]; !ok {
		return fmt.Errorf("LinkGene: %q: %w", rxnID, ErrReactionNotFound)
	}
	n.geneRxns[geneID][rxnID] = struct{}{}
	n.rxnGenes[rxnID][geneID] = struct{}{}

	return nil
}

// SetObjective selects the reaction whose flux is maximised as growth.
func (n *Network) SetObjective(rxnID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.reactions[rxnID]; !ok {
		return fmt.Errorf("SetObjective: %q: %w", rxnID, ErrReactionNotFound)
	}
	n.objective = rxnID

	return nil
}

// Objective returns the objective reaction identifier ("" when unset).
func (n *Network) Objective() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.objective
}

// SetObjectiveValue stores the most recently computed growth value.
// NaN marks the value as unknown.
func (n *Network) SetObjectiveValue(v float64) {
	n.mu.Lock()
	n.objectiveValue = v
	n.hasObjective = !math.IsNaN(v)
	n.mu.Unlock()
}

// ObjectiveValue returns the stored growth value and whether it is known.
func (n *Network) ObjectiveValue() (float64, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.objectiveValue, n.hasObjective
}

// RemoveMetabolites deletes the given metabolites and strips them from the
// stoichiometry of every reaction. Reactions themselves are kept.
// Returns ErrMetaboliteNotFound without mutating if any id is unknown.
// Complexity: O(sum of metabolite degrees).
func (n *Network) RemoveMetabolites(ids ...string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, id := range ids {
		if _, ok := n.metabolites[id]; !ok {
			return fmt.Errorf("RemoveMetabolites: %q: %w", id, ErrMetaboliteNotFound)
		}
	}
	for _, id := range ids {
		for rxn := range n.metRxns[id] {
			delete(n.stoich[rxn], id)
		}
		delete(n.metRxns, id)
		delete(n.metabolites, id)
	}

	return nil
}

// RemoveReactions deletes the given reactions and every relation row that
// references them. Metabolites and genes are kept even if orphaned.
// Removing the objective reaction clears the objective.
// Returns ErrReactionNotFound without mutating if any id is unknown.
func (n *Network) RemoveReactions(ids ...string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, id := range ids {
		if _, ok := n.reactions[id]; !ok {
			return fmt.Errorf("RemoveReactions: %q: %w", id, ErrReactionNotFound)
		}
	}
	for _, id := range ids {
		for met := range n.stoich[id] {
			delete(n.metRxns[met], id)
		}
		for gene := range n.rxnGenes[id] {
			delete(n.geneRxns[gene], id)
		}
		delete(n.stoich, id)
		delete(n.rxnGenes, id)
		delete(n.reactions, id)
		if n.objective == id {
			n.objective = ""
		}
	}

	return nil
}

// SetBounds replaces both bounds of one reaction in a single step.
// Returns ErrReactionNotFound or ErrInvalidBounds.
func (n *Network) SetBounds(rxnID string, lower, upper float64) error {
	if err := checkBounds(lower, upper); err != nil {
		return fmt.Errorf("SetBounds: %q: %w", rxnID, err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	r, ok := n.reactions[rxnID]
	if !ok {
		return fmt.Errorf("SetBounds: %q: %w", rxnID, ErrReactionNotFound)
	}
	r.LowerBound, r.UpperBound = lower, upper

	return nil
}

// ApplyFluxRanges tightens every listed reaction to its flux range.
//
// New bounds are (Min, max(Min, Max)): when numerical noise yields
// Min > Max the reaction is pinned at Min, so lower <= upper always holds.
// Unknown reactions or NaN ranges abort the call before any bound changes.
func (n *Network) ApplyFluxRanges(ranges map[string]FluxRange) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, fr := range ranges {
		if _, ok := n.reactions[id]; !ok {
			return fmt.Errorf("ApplyFluxRanges: %q: %w", id, ErrReactionNotFound)
		}
		if math.IsNaN(fr.Min) || math.IsNaN(fr.Max) {
			return fmt.Errorf("ApplyFluxRanges: %q: %w", id, ErrInvalidBounds)
		}
	}
	for id, fr := range ranges {
		upper := fr.Max
		if upper < fr.Min {
			upper = fr.Min
		}
		r := n.reactions[id]
		r.LowerBound, r.UpperBound = fr.Min, upper
	}

	return nil
}

func checkBounds(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return ErrInvalidBounds
	}
	return nil
}
