package snapshot

import (
	"math"
	"sort"

	"github.com/katalvlaran/metavuln/chokepoint"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/deadend"
	"github.com/katalvlaran/metavuln/knockout"
)

// Source exposes the live network and its cached analysis results.
// Getters report a missing result with an error; Build treats that as empty.
type Source interface {
	Network() *core.Network
	DeadEnds() (deadend.Result, error)
	Chokepoints() ([]chokepoint.Fact, error)
	FVA() (map[string]core.FluxRange, error)
	Knockout() (knockout.Result, error)
	EssentialReactions() ([]string, error)
	EssentialGenes() ([]string, error)
	EssentialGeneReactions() (map[string][]string, error)
}

// Reaction is a detached reaction record.
type Reaction struct {
	core.Reaction
	Formula       string
	Stoichiometry map[string]float64
	Genes         []string
}

// Snapshot is the frozen state of one stage.
type Snapshot struct {
	stage          string
	id             string
	objective      string
	objectiveValue float64

	reactions   []Reaction
	metabolites []core.Metabolite
	genes       []core.Gene

	dem                    deadend.Result
	chokepoints            []chokepoint.Fact
	fva                    map[string]core.FluxRange
	knockout               knockout.Result
	essentialReactions     []string
	essentialGenes         []string
	essentialGeneReactions map[string][]string
	reversible             []string
	dead                   []string
}

// Build freezes src under the given stage label.
// Complexity: O(R + M + G + nnz(S)).
func Build(stage string, src Source) *Snapshot {
	n := src.Network()
	s := &Snapshot{
		stage:          stage,
		id:             n.ID(),
		objective:      n.Objective(),
		objectiveValue: math.NaN(),
		reversible:     n.ReversibleReactions(),
		dead:           n.DeadReactions(),
		metabolites:    n.Metabolites(),
		genes:          n.Genes(),
	}
	if v, ok := n.ObjectiveValue(); ok {
		s.objectiveValue = v
	}
	for _, r := range n.Reactions() {
		s.reactions = append(s.reactions, Reaction{
			Reaction:      r,
			Formula:       n.Formula(r.ID),
			Stoichiometry: n.Stoichiometry(r.ID),
			Genes:         n.ReactionGenes(r.ID),
		})
	}

	// Missing results become empty values.
	if dem, err := src.DeadEnds(); err == nil {
		s.dem = dem
	} else {
		s.dem = deadend.Result{}
	}
	if facts, err := src.Chokepoints(); err == nil {
		s.chokepoints = facts
	} else {
		s.chokepoints = []chokepoint.Fact{}
	}
	if fva, err := src.FVA(); err == nil {
		s.fva = fva
	} else {
		s.fva = map[string]core.FluxRange{}
	}
	if ko, err := src.Knockout(); err == nil {
		s.knockout = ko
	} else {
		s.knockout = knockout.Result{}
	}
	s.essentialReactions = orEmpty(src.EssentialReactions())
	s.essentialGenes = orEmpty(src.EssentialGenes())
	if egr, err := src.EssentialGeneReactions(); err == nil {
		s.essentialGeneReactions = egr
	} else {
		s.essentialGeneReactions = map[string][]string{}
	}

	// Detach from the Source's storage.
	s.dem, s.chokepoints, s.fva, s.knockout = s.DeadEnds(), s.Chokepoints(), s.FVA(), s.Knockout()
	s.essentialReactions, s.essentialGenes = s.EssentialReactions(), s.EssentialGenes()
	s.essentialGeneReactions = s.EssentialGeneReactions()

	return s
}

func orEmpty(ids []string, err error) []string {
	if err != nil || ids == nil {
		return []string{}
	}
	return ids
}

// Stage returns the stage label given to Build.
func (s *Snapshot) Stage() string { return s.stage }

// ID returns the model identifier.
func (s *Snapshot) ID() string { return s.id }

// Objective returns the objective reaction id, or "".
func (s *Snapshot) Objective() string { return s.objective }

// ObjectiveValue returns the growth value, NaN when unknown.
func (s *Snapshot) ObjectiveValue() float64 { return s.objectiveValue }

// Reactions returns the reactions sorted by id.
func (s *Snapshot) Reactions() []Reaction {
	out := make([]Reaction, len(s.reactions))
	for i, r := range s.reactions {
		out[i] = copyReaction(r)
	}
	return out
}

// Reaction returns one reaction by id.
func (s *Snapshot) Reaction(id string) (Reaction, bool) {
	i := sort.Search(len(s.reactions), func(i int) bool { return s.reactions[i].ID >= id })
	if i < len(s.reactions) && s.reactions[i].ID == id {
		return copyReaction(s.reactions[i]), true
	}
	return Reaction{}, false
}

func copyReaction(r Reaction) Reaction {
	st := make(map[string]float64, len(r.Stoichiometry))
	for k, v := range r.Stoichiometry {
		st[k] = v
	}
	r.Stoichiometry = st
	r.Genes = append([]string{}, r.Genes...)
	return r
}

// ReactionIDs returns the sorted reaction ids.
func (s *Snapshot) ReactionIDs() []string {
	out := make([]string, len(s.reactions))
	for i, r := range s.reactions {
		out[i] = r.ID
	}
	return out
}

// Metabolites returns the metabolites sorted by id.
func (s *Snapshot) Metabolites() []core.Metabolite {
	return append([]core.Metabolite{}, s.metabolites...)
}

// MetaboliteIDs returns the sorted metabolite ids.
func (s *Snapshot) MetaboliteIDs() []string {
	out := make([]string, len(s.metabolites))
	for i, m := range s.metabolites {
		out[i] = m.ID
	}
	return out
}

// Genes returns the genes sorted by id.
func (s *Snapshot) Genes() []core.Gene {
	return append([]core.Gene{}, s.genes...)
}

// GeneIDs returns the sorted gene ids.
func (s *Snapshot) GeneIDs() []string {
	out := make([]string, len(s.genes))
	for i, g := range s.genes {
		out[i] = g.ID
	}
	return out
}

// DeadEnds returns the dead-end map by compartment.
func (s *Snapshot) DeadEnds() deadend.Result {
	out := make(deadend.Result, len(s.dem))
	for c, ids := range s.dem {
		out[c] = append([]string{}, ids...)
	}
	return out
}

// DeadEndIDs returns every dead-end metabolite id, sorted.
func (s *Snapshot) DeadEndIDs() []string {
	return s.dem.Metabolites()
}

// Chokepoints returns the chokepoint facts.
func (s *Snapshot) Chokepoints() []chokepoint.Fact {
	return append([]chokepoint.Fact{}, s.chokepoints...)
}

// ChokepointReactions returns the distinct chokepoint reaction ids.
func (s *Snapshot) ChokepointReactions() []string {
	return chokepoint.Reactions(s.chokepoints)
}

// FVA returns the flux ranges.
func (s *Snapshot) FVA() map[string]core.FluxRange {
	out := make(map[string]core.FluxRange, len(s.fva))
	for k, v := range s.fva {
		out[k] = v
	}
	return out
}

// Knockout returns the knockout growth values.
func (s *Snapshot) Knockout() knockout.Result {
	out := make(knockout.Result, len(s.knockout))
	for k, v := range s.knockout {
		out[k] = v
	}
	return out
}

// EssentialReactions returns the essential reaction ids.
func (s *Snapshot) EssentialReactions() []string {
	return append([]string{}, s.essentialReactions...)
}

// EssentialGenes returns the essential gene ids.
func (s *Snapshot) EssentialGenes() []string {
	return append([]string{}, s.essentialGenes...)
}

// EssentialGeneReactions returns the gene -> disabled reactions map.
func (s *Snapshot) EssentialGeneReactions() map[string][]string {
	out := make(map[string][]string, len(s.essentialGeneReactions))
	for g, ids := range s.essentialGeneReactions {
		out[g] = append([]string{}, ids...)
	}
	return out
}

// EssentialGeneReactionIDs returns the distinct reactions disabled by any
// essential gene, sorted.
func (s *Snapshot) EssentialGeneReactionIDs() []string {
	set := make(map[string]struct{})
	for _, ids := range s.essentialGeneReactions {
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// ReversibleReactions returns the reversible reaction ids.
func (s *Snapshot) ReversibleReactions() []string {
	return append([]string{}, s.reversible...)
}

// DeadReactions returns the blocked reaction ids.
func (s *Snapshot) DeadReactions() []string {
	return append([]string{}, s.dead...)
}

// NonReversibleReactions returns reactions neither reversible nor dead.
func (s *Snapshot) NonReversibleReactions() []string {
	skip := make(map[string]struct{}, len(s.reversible)+len(s.dead))
	for _, id := range s.reversible {
		skip[id] = struct{}{}
	}
	for _, id := range s.dead {
		skip[id] = struct{}{}
	}
	out := make([]string, 0)
	for _, r := range s.reactions {
		if _, ok := skip[r.ID]; !ok {
			out = append(out, r.ID)
		}
	}
	return out
}
