package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/metavuln/core"
)

func TestAddReactionValidation(t *testing.T) {
	n := core.NewNetwork("m")
	MustAddMetabolite(t, n, MetA, CompCytosol)

	err := n.AddReaction(core.Reaction{ID: ""}, nil)
	require.ErrorIs(t, err, core.ErrEmptyID)

	err = n.AddReaction(core.Reaction{ID: "R", LowerBound: 5, UpperBound: 1}, nil)
	require.ErrorIs(t, err, core.ErrInvalidBounds)

	err = n.AddReaction(core.Reaction{ID: "R", UpperBound: 1}, map[string]float64{MetA: 0})
	require.ErrorIs(t, err, core.ErrInvalidCoefficient)

	err = n.AddReaction(core.Reaction{ID: "R", UpperBound: 1}, map[string]float64{"missing": 1})
	require.ErrorIs(t, err, core.ErrMetaboliteNotFound)
	assert.Equal(t, 0, n.ReactionCount(), "failed add must not insert")

	require.NoError(t, n.AddReaction(core.Reaction{ID: "R", UpperBound: 1}, map[string]float64{MetA: -1}))
	err = n.AddReaction(core.Reaction{ID: "R", UpperBound: 1}, nil)
	require.ErrorIs(t, err, core.ErrDuplicateID)
}

func TestRelationTables(t *testing.T) {
	n := NewLinearNetwork(t)

	assert.Equal(t, []string{MetA}, n.Reactants(Rxn1))
	assert.Equal(t, []string{MetB}, n.Products(Rxn1))
	assert.Equal(t, []string{RxnUptake, Rxn1}, n.MetaboliteReactions(MetA))
	assert.Equal(t, []string{Rxn1, Rxn2}, n.MetaboliteReactions(MetB))
	assert.Equal(t, []string{CompCytosol, CompExtra}, n.Compartments())
	assert.Equal(t, map[string]float64{MetB: -1, MetC: 2}, n.Stoichiometry(Rxn2))
}

func TestFormula(t *testing.T) {
	n := NewLinearNetwork(t)

	assert.Equal(t, "A --> B", n.Formula(Rxn1))
	assert.Equal(t, "B <=> 2 C", n.Formula(Rxn2))
	assert.Equal(t, "--> A", n.Formula(RxnUptake))
	assert.Equal(t, "C -->", n.Formula(RxnSink))
	assert.Equal(t, "", n.Formula("missing"))
}

func TestFluxRoles(t *testing.T) {
	n := NewLinearNetwork(t)

	consumed, produced := n.FluxRoles(Rxn1)
	assert.Equal(t, []string{MetA}, consumed)
	assert.Equal(t, []string{MetB}, produced)

	consumed, produced = n.FluxRoles(Rxn2)
	assert.Equal(t, []string{MetB, MetC}, consumed)
	assert.Equal(t, []string{MetB, MetC}, produced)

	require.NoError(t, n.SetBounds(Rxn1, -10, 0))
	consumed, produced = n.FluxRoles(Rxn1)
	assert.Equal(t, []string{MetB}, consumed)
	assert.Equal(t, []string{MetA}, produced)
}

func TestRemoveMetabolitesIsAtomic(t *testing.T) {
	n := NewLinearNetwork(t)

	err := n.RemoveMetabolites(MetA, "missing")
	require.ErrorIs(t, err, core.ErrMetaboliteNotFound)
	assert.Equal(t, 3, n.MetaboliteCount())

	require.NoError(t, n.RemoveMetabolites(MetA))
	assert.Equal(t, 2, n.MetaboliteCount())
	assert.Empty(t, n.Reactants(Rxn1))
	assert.Empty(t, n.Stoichiometry(RxnUptake))
	assert.Equal(t, 4, n.ReactionCount(), "reactions survive metabolite removal")
}

func TestRemoveReactions(t *testing.T) {
	n := NewLinearNetwork(t)
	require.NoError(t, n.AddGene(core.Gene{ID: "g1"}))
	require.NoError(t, n.LinkGene("g1", RxnSink))

	require.NoError(t, n.RemoveReactions(RxnSink))
	assert.Equal(t, []string{Rxn2}, n.MetaboliteReactions(MetC))
	assert.Empty(t, n.GeneReactions("g1"))
	assert.Equal(t, "", n.Objective(), "objective cleared with its reaction")

	require.ErrorIs(t, n.RemoveReactions("missing"), core.ErrReactionNotFound)
}

func TestBoundsUpdates(t *testing.T) {
	n := NewLinearNetwork(t)

	require.ErrorIs(t, n.SetBounds(Rxn1, 2, 1), core.ErrInvalidBounds)
	require.ErrorIs(t, n.SetBounds(Rxn1, math.NaN(), 1), core.ErrInvalidBounds)

	err := n.ApplyFluxRanges(map[string]core.FluxRange{
		Rxn1: {Min: 1, Max: 5},
		Rxn2: {Min: 3, Max: 2.9999},
	})
	require.NoError(t, err)
	r1, _ := n.Reaction(Rxn1)
	assert.Equal(t, [2]float64{1, 5}, [2]float64{r1.LowerBound, r1.UpperBound})
	r2, _ := n.Reaction(Rxn2)
	assert.Equal(t, [2]float64{3, 3}, [2]float64{r2.LowerBound, r2.UpperBound})

	err = n.ApplyFluxRanges(map[string]core.FluxRange{Rxn1: {Min: 0, Max: 0}, "missing": {}})
	require.ErrorIs(t, err, core.ErrReactionNotFound)
	r1, _ = n.Reaction(Rxn1)
	assert.Equal(t, 1.0, r1.LowerBound, "failed update leaves bounds untouched")
}

func TestDeadAndReversible(t *testing.T) {
	n := NewLinearNetwork(t)
	require.NoError(t, n.SetBounds(Rxn1, 0, 0))

	assert.Equal(t, []string{Rxn1}, n.DeadReactions())
	assert.Equal(t, []string{Rxn2}, n.ReversibleReactions())
	d, err := n.Direction(Rxn1)
	require.NoError(t, err)
	assert.Equal(t, core.Forward, d)

	_, err = n.Direction("missing")
	require.ErrorIs(t, err, core.ErrReactionNotFound)
}

func TestBoundaryAndIncomplete(t *testing.T) {
	n := NewLinearNetwork(t)

	assert.Equal(t, []string{RxnUptake, RxnSink}, n.BoundaryReactions())
	assert.Equal(t, []string{RxnUptake, RxnSink}, n.IncompleteReactions())
}

func TestObjectiveValue(t *testing.T) {
	n := NewLinearNetwork(t)
	_, ok := n.ObjectiveValue()
	assert.False(t, ok)

	n.SetObjectiveValue(0.87)
	v, ok := n.ObjectiveValue()
	assert.True(t, ok)
	assert.Equal(t, 0.87, v)

	n.SetObjectiveValue(math.NaN())
	_, ok = n.ObjectiveValue()
	assert.False(t, ok)
}

func TestCloneIsDetached(t *testing.T) {
	n := NewLinearNetwork(t)
	c := n.Clone()

	require.NoError(t, c.RemoveMetabolites(MetB))
	require.NoError(t, c.SetBounds(Rxn2, 0, 0))

	assert.Equal(t, 3, n.MetaboliteCount())
	assert.Equal(t, []string{Rxn1, Rxn2}, n.MetaboliteReactions(MetB))
	r2, _ := n.Reaction(Rxn2)
	assert.Equal(t, -Bound1000, r2.LowerBound)
	assert.Equal(t, n.Objective(), c.Objective())
}
