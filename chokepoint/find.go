package chokepoint

import (
	"sort"

	"github.com/katalvlaran/metavuln/core"
)

// Fact pairs a chokepoint reaction with the metabolite it is the sole
// consumer or sole producer of.
type Fact struct {
	Reaction   string `json:"reaction"`
	Metabolite string `json:"metabolite"`
}

// Option configures Find.
type Option func(*options)

type options struct {
	oneSided bool
}

// WithDeadEndMetabolites also evaluates metabolites that are only consumed
// or only produced: their single consumer (or producer) becomes a fact.
func WithDeadEndMetabolites() Option {
	return func(o *options) { o.oneSided = true }
}

// occurrence is one (metabolite, reaction) role.
type occurrence struct {
	met string
	rxn string
}

// Find returns the chokepoint facts of n, sorted by reaction then
// metabolite, without duplicates. With excludeDead, blocked reactions are
// skipped entirely. Metabolites only consumed or only produced yield no
// fact unless WithDeadEndMetabolites is given.
//
// Implementation:
//   - Stage 1: Build consumer and producer occurrence lists from FluxRoles.
//   - Stage 2: Sort both lists by metabolite id.
//   - Stage 3: Merge-walk: for every metabolite present in both lists, a run
//     of length one on either side yields that side's fact.
//
// Complexity: O(k log k) for k role occurrences.
func Find(n *core.Network, excludeDead bool, opts ...Option) []Fact {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Stage 1: occurrence lists
	var consumers, producers []occurrence
	for _, rxn := range n.ReactionIDs() {
		if excludeDead && n.IsDead(rxn) {
			continue
		}
		in, out := n.FluxRoles(rxn)
		for _, m := range in {
			consumers = append(consumers, occurrence{met: m, rxn: rxn})
		}
		for _, m := range out {
			producers = append(producers, occurrence{met: m, rxn: rxn})
		}
	}

	// Stage 2: sort by metabolite
	byMet := func(s []occurrence) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].met != s[j].met {
				return s[i].met < s[j].met
			}
			return s[i].rxn < s[j].rxn
		})
	}
	byMet(consumers)
	byMet(producers)

	// Stage 3: merge walk
	seen := make(map[Fact]struct{})
	emit := func(run []occurrence) {
		if len(run) == 1 {
			seen[Fact{Reaction: run[0].rxn, Metabolite: run[0].met}] = struct{}{}
		}
	}
	i, j := 0, 0
	for i < len(consumers) || j < len(producers) {
		switch {
		case j >= len(producers) || (i < len(consumers) && consumers[i].met < producers[j].met):
			end := runEnd(consumers, i)
			if o.oneSided {
				emit(consumers[i:end])
			}
			i = end
		case i >= len(consumers) || producers[j].met < consumers[i].met:
			end := runEnd(producers, j)
			if o.oneSided {
				emit(producers[j:end])
			}
			j = end
		default:
			ei, ej := runEnd(consumers, i), runEnd(producers, j)
			emit(consumers[i:ei])
			emit(producers[j:ej])
			i, j = ei, ej
		}
	}

	facts := make([]Fact, 0, len(seen))
	for f := range seen {
		facts = append(facts, f)
	}
	sort.Slice(facts, func(a, b int) bool {
		if facts[a].Reaction != facts[b].Reaction {
			return facts[a].Reaction < facts[b].Reaction
		}
		return facts[a].Metabolite < facts[b].Metabolite
	})

	return facts
}

// runEnd returns the index one past the run of equal metabolites starting at i.
func runEnd(s []occurrence, i int) int {
	end := i + 1
	for end < len(s) && s[end].met == s[i].met {
		end++
	}
	return end
}

// Reactions returns the distinct reaction ids of facts, sorted.
func Reactions(facts []Fact) []string {
	set := make(map[string]struct{}, len(facts))
	for _, f := range facts {
		set[f.Reaction] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)

	return out
}
