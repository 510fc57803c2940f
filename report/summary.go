package report

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/metavuln/pipeline"
	"github.com/katalvlaran/metavuln/setops"
	"github.com/katalvlaran/metavuln/snapshot"
	"github.com/katalvlaran/metavuln/sweep"
)

// Set names used as Comparisons keys.
const (
	SetChokepoints        = "chokepoints"
	SetDeadEnds           = "dead_end_metabolites"
	SetDeadReactions      = "dead_reactions"
	SetReversible         = "reversible_reactions"
	SetEssentialReactions = "essential_reactions"
	SetEssentialGenes     = "essential_genes"
)

// StageSummary counts the sets of one snapshot.
type StageSummary struct {
	Stage               string          `json:"stage"`
	ObjectiveValue      snapshot.Number `json:"objective_value"`
	Reactions           int             `json:"reactions"`
	Metabolites         int             `json:"metabolites"`
	Genes               int             `json:"genes"`
	DeadEnds            int             `json:"dead_end_metabolites"`
	Chokepoints         int             `json:"chokepoints"`
	DeadReactions       int             `json:"dead_reactions"`
	ReversibleReactions int             `json:"reversible_reactions"`
	EssentialReactions  int             `json:"essential_reactions"`
	EssentialGenes      int             `json:"essential_genes"`
	Error               string          `json:"error,omitempty"`
}

// Summarize counts the sets of s. errMsg is the stage error, if any.
func Summarize(s *snapshot.Snapshot, errMsg string) StageSummary {
	return StageSummary{
		Stage:               s.Stage(),
		ObjectiveValue:      snapshot.Number(s.ObjectiveValue()),
		Reactions:           len(s.ReactionIDs()),
		Metabolites:         len(s.MetaboliteIDs()),
		Genes:               len(s.GeneIDs()),
		DeadEnds:            len(s.DeadEndIDs()),
		Chokepoints:         len(s.ChokepointReactions()),
		DeadReactions:       len(s.DeadReactions()),
		ReversibleReactions: len(s.ReversibleReactions()),
		EssentialReactions:  len(s.EssentialReactions()),
		EssentialGenes:      len(s.EssentialGenes()),
		Error:               errMsg,
	}
}

// Critical is the report of a critical point run.
type Critical struct {
	RunID  string         `json:"run_id"`
	Model  string         `json:"model"`
	Stages []StageSummary `json:"stages"`

	// Comparisons maps a set name to the stage-to-stage comparisons.
	Comparisons map[string][]setops.StageComparison[string] `json:"comparisons"`

	Snapshots []*snapshot.Snapshot `json:"snapshots"`
}

// setGetters extracts each compared set from a snapshot.
var setGetters = map[string]func(*snapshot.Snapshot) []string{
	SetChokepoints:        (*snapshot.Snapshot).ChokepointReactions,
	SetDeadEnds:           (*snapshot.Snapshot).DeadEndIDs,
	SetDeadReactions:      (*snapshot.Snapshot).DeadReactions,
	SetReversible:         (*snapshot.Snapshot).ReversibleReactions,
	SetEssentialReactions: (*snapshot.Snapshot).EssentialReactions,
	SetEssentialGenes:     (*snapshot.Snapshot).EssentialGenes,
}

// CriticalSummary builds the report of res. Comparisons are produced only
// when two or four stages are present.
func CriticalSummary(res *pipeline.Result) (*Critical, error) {
	snaps := res.Ordered()
	out := &Critical{
		RunID:       uuid.NewString(),
		Model:       res.Model,
		Stages:      make([]StageSummary, 0, len(snaps)),
		Comparisons: make(map[string][]setops.StageComparison[string], len(setGetters)),
		Snapshots:   snaps,
	}
	labels := make([]string, len(snaps))
	for i, s := range snaps {
		labels[i] = s.Stage()
		out.Stages = append(out.Stages, Summarize(s, res.Errors[s.Stage()]))
	}
	if len(snaps) != 2 && len(snaps) != 4 {
		return out, nil
	}
	for name, get := range setGetters {
		sets := make([]setops.Set[string], len(snaps))
		for i, s := range snaps {
			sets[i] = setops.Of(get(s)...)
		}
		cmp, err := setops.CompareStages(labels, sets...)
		if err != nil {
			return nil, err
		}
		out.Comparisons[name] = cmp
	}

	return out, nil
}

// Table returns the per-stage counts as a table.
func (c *Critical) Table() *Table {
	t := &Table{Header: []string{
		"stage", "objective_value", "reactions", "metabolites", "genes",
		"dead_end_metabolites", "chokepoints", "dead_reactions",
		"reversible_reactions", "essential_reactions", "essential_genes", "error",
	}}
	for _, s := range c.Stages {
		t.Rows = append(t.Rows, []string{
			s.Stage, formatFloat(float64(s.ObjectiveValue)),
			strconv.Itoa(s.Reactions), strconv.Itoa(s.Metabolites), strconv.Itoa(s.Genes),
			strconv.Itoa(s.DeadEnds), strconv.Itoa(s.Chokepoints), strconv.Itoa(s.DeadReactions),
			strconv.Itoa(s.ReversibleReactions), strconv.Itoa(s.EssentialReactions),
			strconv.Itoa(s.EssentialGenes), s.Error,
		})
	}
	return t
}

// Sweep is the report of a growth sweep.
type Sweep struct {
	RunID string        `json:"run_id"`
	*sweep.Result
}

// SweepSummary wraps res with a fresh run id.
func SweepSummary(res *sweep.Result) *Sweep {
	return &Sweep{RunID: uuid.NewString(), Result: res}
}

// SweepTable renders one row per fraction with set sizes. Failed rows
// repeat their error marker in every set column.
func SweepTable(res *sweep.Result) *Table {
	t := &Table{Header: []string{
		"fraction", "reversible", "dead", "non_reversible", "chokepoints", "essential_reactions",
	}}
	for _, r := range res.Rows {
		if r.Failed() {
			t.Rows = append(t.Rows, []string{r.Label, r.Err, r.Err, r.Err, r.Err, strconv.Itoa(len(r.EssentialReactions))})
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.Label,
			strconv.Itoa(len(r.Reversible)),
			strconv.Itoa(len(r.Dead)),
			strconv.Itoa(len(r.NonReversible)),
			strconv.Itoa(len(r.Chokepoints)),
			strconv.Itoa(len(r.EssentialReactions)),
		})
	}
	return t
}
