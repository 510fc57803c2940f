package knockout

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/gpr"
)

// GeneReactions maps each gene to the sorted reactions that become inactive
// when that gene alone is knocked out. Genes with no such reaction map to an
// empty list. Returns gpr.ErrSyntax for malformed rules.
func GeneReactions(n *core.Network, genes []string) (map[string][]string, error) {
	rules := make(map[string]*gpr.Rule)
	out := make(map[string][]string, len(genes))
	for _, gene := range genes {
		hit := make([]string, 0)
		for _, rxn := range n.GeneReactions(gene) {
			rule, ok := rules[rxn]
			if !ok {
				r, _ := n.Reaction(rxn)
				parsed, err := gpr.Parse(r.GeneRule)
				if err != nil {
					return nil, fmt.Errorf("GeneReactions: %s: %w", rxn, err)
				}
				rules[rxn], rule = parsed, parsed
			}
			if !rule.Active(func(g string) bool { return g == gene }) {
				hit = append(hit, rxn)
			}
		}
		sort.Strings(hit)
		out[gene] = hit
	}

	return out, nil
}
