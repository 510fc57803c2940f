package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Reaction returns a copy of the reaction with the given id.
func (n *Network) Reaction(id string) (Reaction, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	r, ok := n.reactions[id]
	if !ok {
		return Reaction{}, false
	}
	return *r, true
}

// Metabolite returns a copy of the metabolite with the given id.
func (n *Network) Metabolite(id string) (Metabolite, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	m, ok := n.metabolites[id]
	if !ok {
		return Metabolite{}, false
	}
	return *m, true
}

// Gene returns a copy of the gene with the given id.
func (n *Network) Gene(id string) (Gene, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	g, ok := n.genes[id]
	if !ok {
		return Gene{}, false
	}
	return *g, true
}

// Reactions returns copies of all reactions sorted by ID.
func (n *Network) Reactions() []Reaction {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Reaction, 0, len(n.reactions))
	for _, r := range n.reactions {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Metabolites returns copies of all metabolites sorted by ID.
func (n *Network) Metabolites() []Metabolite {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Metabolite, 0, len(n.metabolites))
	for _, m := range n.metabolites {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Genes returns copies of all genes sorted by ID.
func (n *Network) Genes() []Gene {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Gene, 0, len(n.genes))
	for _, g := range n.genes {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ReactionIDs returns all reaction identifiers, sorted.
func (n *Network) ReactionIDs() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.reactions)
}

// MetaboliteIDs returns all metabolite identifiers, sorted.
func (n *Network) MetaboliteIDs() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.metabolites)
}

// ReactionCount returns the number of reactions.
func (n *Network) ReactionCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.reactions)
}

// MetaboliteCount returns the number of metabolites.
func (n *Network) MetaboliteCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.metabolites)
}

// Compartments returns every known compartment label, sorted.
func (n *Network) Compartments() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.compartments)
}

// CompartmentName returns the display name registered for a compartment.
func (n *Network) CompartmentName(id string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.compartments[id]
}

// Stoichiometry returns a copy of the metabolite -> coefficient row of a
// reaction, or nil if the reaction is unknown.
func (n *Network) Stoichiometry(rxnID string) map[string]float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	row, ok := n.stoich[rxnID]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(row))
	for k, v := range row {
		out[k] = v
	}

	return out
}

// Reactants returns the sorted ids of metabolites with a negative coefficient.
func (n *Network) Reactants(rxnID string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.sideLocked(rxnID, -1)
}

// Products returns the sorted ids of metabolites with a positive coefficient.
func (n *Network) Products(rxnID string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.sideLocked(rxnID, +1)
}

// MetaboliteReactions returns the sorted ids of reactions a metabolite takes part in.
func (n *Network) MetaboliteReactions(metID string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.metRxns[metID])
}

// GeneReactions returns the sorted ids of reactions whose rule references the gene.
func (n *Network) GeneReactions(geneID string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.geneRxns[geneID])
}

// ReactionGenes returns the sorted ids of genes referenced by a reaction rule.
func (n *Network) ReactionGenes(rxnID string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return sortedKeys(n.rxnGenes[rxnID])
}

// Formula renders a reaction as "a + 2 b --> c". The arrow follows the
// current direction: "-->", "<--" or "<=>".
func (n *Network) Formula(rxnID string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	r, ok := n.reactions[rxnID]
	if !ok {
		return ""
	}
	render := func(ids []string) string {
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			coef := math.Abs(n.stoich[rxnID][id])
			if coef == 1 {
				parts = append(parts, id)
				continue
			}
			parts = append(parts, strconv.FormatFloat(coef, 'g', -1, 64)+" "+id)
		}
		return strings.Join(parts, " + ")
	}
	arrow := "-->"
	switch Classify(r.LowerBound, r.UpperBound) {
	case Backward:
		arrow = "<--"
	case Reversible:
		arrow = "<=>"
	}

	return strings.TrimSpace(render(n.sideLocked(rxnID, -1)) + " " + arrow + " " + render(n.sideLocked(rxnID, +1)))
}

// sideLocked returns reactants (sign<0) or products (sign>0). Caller holds mu.
func (n *Network) sideLocked(rxnID string, sign int) []string {
	out := make([]string, 0, len(n.stoich[rxnID]))
	for met, coef := range n.stoich[rxnID] {
		if (sign < 0 && coef < 0) || (sign > 0 && coef > 0) {
			out = append(out, met)
		}
	}
	sort.Strings(out)

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
