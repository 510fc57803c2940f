package snapshot

import (
	"encoding/json"
	"math"
	"sort"
)

// Number is a float64 that encodes non-finite values as JSON strings.
type Number float64

// MarshalJSON implements json.Marshaler.
func (f Number) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(v)
}

type jsonSnapshot struct {
	ID                      string     `json:"id"`
	Stage                   string     `json:"stage"`
	Objective               string     `json:"objective"`
	ObjectiveValue          Number     `json:"objective_value"`
	Reactions               []string   `json:"reactions"`
	Metabolites             []string   `json:"metabolites"`
	Genes                   []string   `json:"genes"`
	DEM                     []string   `json:"dem"`
	Chokepoints             [][]string `json:"chokepoints"`
	FVA                     [][]any    `json:"fva"`
	EssentialGenes          []string   `json:"essential_genes"`
	EssentialGenesReactions []string   `json:"essential_genes_reactions"`
	KnockoutGrowth          [][]any    `json:"knockout_growth"`
	EssentialReactions      []string   `json:"essential_reactions"`
	DeadReactions           []string   `json:"dead_reactions"`
	ReversibleReactions     []string   `json:"reversible_reactions"`
}

// MarshalJSON implements json.Marshaler. Chokepoints are [reaction,
// metabolite] pairs, fva rows are [reaction, upper, lower] and knockout
// rows are [reaction, growth], all sorted by reaction.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := jsonSnapshot{
		ID:                      s.id,
		Stage:                   s.stage,
		Objective:               s.objective,
		ObjectiveValue:          Number(s.objectiveValue),
		Reactions:               s.ReactionIDs(),
		Metabolites:             s.MetaboliteIDs(),
		Genes:                   s.GeneIDs(),
		DEM:                     s.DeadEndIDs(),
		Chokepoints:             make([][]string, 0, len(s.chokepoints)),
		FVA:                     make([][]any, 0, len(s.fva)),
		EssentialGenes:          s.EssentialGenes(),
		EssentialGenesReactions: s.EssentialGeneReactionIDs(),
		KnockoutGrowth:          make([][]any, 0, len(s.knockout)),
		EssentialReactions:      s.EssentialReactions(),
		DeadReactions:           s.DeadReactions(),
		ReversibleReactions:     s.ReversibleReactions(),
	}
	for _, f := range s.chokepoints {
		out.Chokepoints = append(out.Chokepoints, []string{f.Reaction, f.Metabolite})
	}
	for _, id := range sortedKeys(s.fva) {
		fr := s.fva[id]
		out.FVA = append(out.FVA, []any{id, Number(fr.Max), Number(fr.Min)})
	}
	for _, id := range sortedKeys(s.knockout) {
		out.KnockoutGrowth = append(out.KnockoutGrowth, []any{id, Number(s.knockout[id])})
	}

	return json.Marshal(out)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
