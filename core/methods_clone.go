// File: methods_clone.go
// Role: Deep copying of Network instances.
// Concurrency:
//   - Read lock on the source only; the clone shares no maps or entities with it.

package core

// Clone returns a deep copy of the Network: entities, relation tables,
// objective and objective value. Later mutation of either Network is never
// visible through the other.
//
// Complexity: O(R + M + G + nnz(S)).
func (n *Network) Clone() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()

	c := NewNetwork(n.id)
	c.objective = n.objective
	c.objectiveValue = n.objectiveValue
	c.hasObjective = n.hasObjective

	for id, name := range n.compartments {
		c.compartments[id] = name
	}
	for id, r := range n.reactions {
		cp := *r
		c.reactions[id] = &cp
	}
	for id, m := range n.metabolites {
		cp := *m
		c.metabolites[id] = &cp
	}
	for id, g := range n.genes {
		cp := *g
		c.genes[id] = &cp
	}
	for id, row := range n.stoich {
		c.stoich[id] = copyFloatRow(row)
	}
	copySetTable(c.metRxns, n.metRxns)
	copySetTable(c.geneRxns, n.geneRxns)
	copySetTable(c.rxnGenes, n.rxnGenes)

	return c
}

func copyFloatRow(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copySetTable(dst, src map[string]map[string]struct{}) {
	for k, set := range src {
		inner := make(map[string]struct{}, len(set))
		for v := range set {
			inner[v] = struct{}{}
		}
		dst[k] = inner
	}
}
