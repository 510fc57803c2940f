package deadend

import (
	"sort"

	"github.com/katalvlaran/metavuln/core"
)

// All selects every compartment.
const All = "ALL"

// Result maps a compartment label to the sorted ids of its dead-end
// metabolites.
type Result map[string][]string

// Metabolites returns every dead-end metabolite id across compartments, sorted.
func (r Result) Metabolites() []string {
	out := make([]string, 0)
	for _, ids := range r {
		out = append(out, ids...)
	}
	sort.Strings(out)

	return out
}

// Len returns the number of dead-end metabolites across compartments.
func (r Result) Len() int {
	total := 0
	for _, ids := range r {
		total += len(ids)
	}
	return total
}

// Find returns the dead-end metabolites of n.
//
// With compartment == All the result has a key for every compartment of the
// network, possibly with an empty list. Otherwise only metabolites of that
// compartment are considered and the result has exactly that key.
//
// Complexity: O(nnz(S) + M log M).
func Find(n *core.Network, compartment string) Result {
	// 1) Seed the result keys
	res := make(Result)
	if compartment == All {
		for _, c := range n.Compartments() {
			res[c] = []string{}
		}
	} else {
		res[compartment] = []string{}
	}

	// 2) Collect compartment of every metabolite in scope
	inScope := make(map[string]string)
	for _, m := range n.Metabolites() {
		if compartment == All || m.Compartment == compartment {
			inScope[m.ID] = m.Compartment
		}
	}

	// 3) One pass over reactions with direction-aware roles
	consumed := make(map[string]struct{})
	produced := make(map[string]struct{})
	for _, rxn := range n.ReactionIDs() {
		in, out := n.FluxRoles(rxn)
		for _, m := range in {
			if _, ok := inScope[m]; ok {
				consumed[m] = struct{}{}
			}
		}
		for _, m := range out {
			if _, ok := inScope[m]; ok {
				produced[m] = struct{}{}
			}
		}
	}

	// 4) Symmetric difference
	add := func(m string) {
		c := inScope[m]
		res[c] = append(res[c], m)
	}
	for m := range consumed {
		if _, ok := produced[m]; !ok {
			add(m)
		}
	}
	for m := range produced {
		if _, ok := consumed[m]; !ok {
			add(m)
		}
	}
	for c := range res {
		sort.Strings(res[c])
	}

	return res
}
