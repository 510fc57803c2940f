package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/metavuln/chokepoint"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/deadend"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/knockout"
)

// Operation names used as LastError keys.
const (
	OpGrowth         = "growth"
	OpFVA            = "fva"
	OpKnockout       = "knockout"
	OpEssentialGenes = "essential_genes"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger passed to every analysis step.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAnalyzer replaces the knockout threshold analyzer.
func WithAnalyzer(a *knockout.Analyzer) Option {
	return func(s *Session) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// Session is the explicit state of one analysis run.
type Session struct {
	net      *core.Network
	oracle   fba.Oracle
	analyzer *knockout.Analyzer
	logger   *slog.Logger

	dem                    optional[deadend.Result]
	chokepoints            optional[[]chokepoint.Fact]
	fva                    optional[map[string]core.FluxRange]
	knockout               optional[knockout.Result]
	essentialReactions     optional[[]string]
	growthEssential        optional[[]string]
	optimalEssential       optional[[]string]
	essentialGenes         optional[[]string]
	essentialGeneReactions optional[map[string][]string]

	errs map[string]string
}

// New returns a Session over n. oracle may be nil when only structural
// analyses (dead ends, chokepoints) are needed.
func New(n *core.Network, oracle fba.Oracle, opts ...Option) *Session {
	s := &Session{
		net:    n,
		oracle: oracle,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		errs:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.analyzer == nil {
		s.analyzer = knockout.NewAnalyzer(knockout.WithLogger(s.logger))
	}
	return s
}

// Network returns the live Network.
func (s *Session) Network() *core.Network {
	return s.net
}

// Describe renders a solver error for reports.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fba.ErrInfeasible):
		return "Model is infeasible"
	case errors.Is(err, fba.ErrUnbounded):
		return "Model is unbounded"
	default:
		return err.Error()
	}
}

// LastError returns the message of the most recent failure of op, or "".
func (s *Session) LastError(op string) string {
	return s.errs[op]
}

func (s *Session) record(op string, err error) {
	if err == nil {
		delete(s.errs, op)
		return
	}
	s.errs[op] = Describe(err)
	s.logger.Warn("analysis step failed", "op", op, "model", s.net.ID(), "err", s.errs[op])
}

func (s *Session) requireOracle(op string) error {
	if s.oracle == nil {
		return fmt.Errorf("%s: no optimization oracle configured", op)
	}
	return nil
}

// --- structural analyses -------------------------------------------------

// FindDeadEnds computes dead-end metabolites for compartment (deadend.All
// for every compartment). The result replaces the cached map for that
// scope: All replaces everything, a single compartment replaces its key.
func (s *Session) FindDeadEnds(compartment string) deadend.Result {
	res := deadend.Find(s.net, compartment)
	cur, ok := s.dem.get()
	if compartment == deadend.All || !ok {
		s.dem.set(res)
	} else {
		cur[compartment] = res[compartment]
	}
	return copyResult(res)
}

// DeadEnds returns the cached dead-end map.
func (s *Session) DeadEnds() (deadend.Result, error) {
	res, ok := s.dem.get()
	if !ok {
		return nil, fmt.Errorf("DeadEnds: %w", ErrNotComputed)
	}
	return copyResult(res), nil
}

// RemoveDeadEnds prunes the Network to its dead-end fixed point and caches
// the final dead-end map.
func (s *Session) RemoveDeadEnds(ctx context.Context, opts ...deadend.Option) (*deadend.Report, error) {
	if _, ok := s.dem.get(); !ok {
		s.FindDeadEnds(deadend.All)
	}
	opts = append([]deadend.Option{deadend.WithContext(ctx), deadend.WithLogger(s.logger)}, opts...)
	rep, err := deadend.Remove(s.net, opts...)
	if rep != nil && rep.Final != nil {
		s.dem.set(rep.Final)
	}
	if err == nil {
		s.logger.Info("dead ends removed",
			"model", s.net.ID(),
			"passes", rep.Passes,
			"metabolites", len(rep.RemovedMetabolites),
			"reactions", len(rep.RemovedReactions))
	}
	return rep, err
}

// FindChokepoints computes and caches chokepoint facts.
func (s *Session) FindChokepoints(excludeDead bool, opts ...chokepoint.Option) []chokepoint.Fact {
	facts := chokepoint.Find(s.net, excludeDead, opts...)
	s.chokepoints.set(facts)
	return append([]chokepoint.Fact(nil), facts...)
}

// Chokepoints returns the cached chokepoint facts.
func (s *Session) Chokepoints() ([]chokepoint.Fact, error) {
	facts, ok := s.chokepoints.get()
	if !ok {
		return nil, fmt.Errorf("Chokepoints: %w", ErrNotComputed)
	}
	return append([]chokepoint.Fact(nil), facts...), nil
}

// ChokepointReactions returns the distinct reactions of the cached facts.
func (s *Session) ChokepointReactions() ([]string, error) {
	facts, err := s.Chokepoints()
	if err != nil {
		return nil, err
	}
	return chokepoint.Reactions(facts), nil
}

// ReversibleReactions returns the Reversible reactions of the live Network.
func (s *Session) ReversibleReactions() []string {
	return s.net.ReversibleReactions()
}

// DeadReactions returns the blocked reactions of the live Network.
func (s *Session) DeadReactions() []string {
	return s.net.DeadReactions()
}

// NonReversibleReactions returns reactions that are neither dead nor reversible.
func (s *Session) NonReversibleReactions() []string {
	skip := make(map[string]struct{})
	for _, id := range s.net.ReversibleReactions() {
		skip[id] = struct{}{}
	}
	for _, id := range s.net.DeadReactions() {
		skip[id] = struct{}{}
	}
	out := make([]string, 0)
	for _, id := range s.net.ReactionIDs() {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// --- oracle-backed analyses ----------------------------------------------

// Growth solves for the objective and stores the value on the Network
// (NaN on failure).
func (s *Session) Growth(ctx context.Context) (float64, error) {
	if err := s.requireOracle("Growth"); err != nil {
		return math.NaN(), err
	}
	g, err := s.oracle.Growth(ctx, s.net)
	if err != nil {
		g = math.NaN()
	}
	s.net.SetObjectiveValue(g)
	s.record(OpGrowth, err)
	return g, err
}

// RunFVA runs flux variability at fraction of optimal growth. With update,
// every reaction is tightened to its range in one atomic step. On failure
// the cached ranges are reset to empty and the error is returned.
func (s *Session) RunFVA(ctx context.Context, fraction float64, update bool) error {
	if err := s.requireOracle("RunFVA"); err != nil {
		return err
	}
	ranges, err := s.oracle.FluxVariability(ctx, s.net, fraction, false)
	s.record(OpFVA, err)
	if err != nil {
		s.fva.set(map[string]core.FluxRange{})
		return err
	}
	s.fva.set(ranges)
	if update {
		if err := s.net.ApplyFluxRanges(ranges); err != nil {
			return err
		}
	}
	return nil
}

// FVA returns the cached flux ranges.
func (s *Session) FVA() (map[string]core.FluxRange, error) {
	ranges, ok := s.fva.get()
	if !ok {
		return nil, fmt.Errorf("FVA: %w", ErrNotComputed)
	}
	out := make(map[string]core.FluxRange, len(ranges))
	for k, v := range ranges {
		out[k] = v
	}
	return out, nil
}

// KnockoutReactions solves growth and then the growth of every single
// reaction knockout. On failure the cached result is reset to empty.
func (s *Session) KnockoutReactions(ctx context.Context) error {
	if err := s.requireOracle("KnockoutReactions"); err != nil {
		return err
	}
	if _, err := s.Growth(ctx); err != nil && ctx.Err() != nil {
		return err
	}
	res, err := s.oracle.KnockoutEachReaction(ctx, s.net)
	s.record(OpKnockout, err)
	if err != nil {
		s.knockout.set(knockout.Result{})
		return err
	}
	s.knockout.set(res)
	return nil
}

// Knockout returns the cached knockout growth values.
func (s *Session) Knockout() (knockout.Result, error) {
	res, ok := s.knockout.get()
	if !ok {
		return nil, fmt.Errorf("Knockout: %w", ErrNotComputed)
	}
	out := make(knockout.Result, len(res))
	for k, v := range res {
		out[k] = v
	}
	return out, nil
}

func (s *Session) ensureKnockout(ctx context.Context) (knockout.Result, error) {
	if res, ok := s.knockout.get(); ok {
		return res, nil
	}
	if err := s.KnockoutReactions(ctx); err != nil {
		return nil, err
	}
	res, _ := s.knockout.get()
	return res, nil
}

func (s *Session) maxGrowth() float64 {
	g, ok := s.net.ObjectiveValue()
	if !ok {
		return math.NaN()
	}
	return g
}

// ComputeEssentialReactions derives reactions whose knockout abolishes
// growth, running the knockouts first if needed. Unknown wild-type growth
// yields an empty set.
func (s *Session) ComputeEssentialReactions(ctx context.Context) error {
	res, err := s.ensureKnockout(ctx)
	if err != nil {
		s.essentialReactions.set([]string{})
		return err
	}
	s.essentialReactions.set(s.analyzer.Essential(res, s.maxGrowth()))
	return nil
}

// EssentialReactions returns the cached essential reactions.
func (s *Session) EssentialReactions() ([]string, error) {
	return getStrings(s.essentialReactions, "EssentialReactions")
}

// FindGrowthEssentialReactions derives reactions whose knockout drops growth
// below fraction of the wild-type optimum.
func (s *Session) FindGrowthEssentialReactions(ctx context.Context, fraction float64) error {
	res, err := s.ensureKnockout(ctx)
	if err != nil {
		s.growthEssential.set([]string{})
		return err
	}
	s.growthEssential.set(s.analyzer.GrowthEssential(res, s.maxGrowth(), fraction))
	return nil
}

// GrowthEssentialReactions returns the cached growth-essential reactions.
func (s *Session) GrowthEssentialReactions() ([]string, error) {
	return getStrings(s.growthEssential, "GrowthEssentialReactions")
}

// FindOptimalGrowthEssentialReactions derives reactions whose knockout
// measurably lowers growth.
func (s *Session) FindOptimalGrowthEssentialReactions(ctx context.Context) error {
	res, err := s.ensureKnockout(ctx)
	if err != nil {
		s.optimalEssential.set([]string{})
		return err
	}
	s.optimalEssential.set(s.analyzer.OptimalGrowthEssential(res, s.maxGrowth()))
	return nil
}

// OptimalGrowthEssentialReactions returns the cached result.
func (s *Session) OptimalGrowthEssentialReactions() ([]string, error) {
	return getStrings(s.optimalEssential, "OptimalGrowthEssentialReactions")
}

// FindEssentialGenes asks the oracle for genes whose knockout abolishes
// growth. On failure the cached set is reset to empty.
func (s *Session) FindEssentialGenes(ctx context.Context) error {
	if err := s.requireOracle("FindEssentialGenes"); err != nil {
		return err
	}
	genes, err := s.oracle.EssentialGenes(ctx, s.net)
	s.record(OpEssentialGenes, err)
	if err != nil {
		s.essentialGenes.set([]string{})
		return err
	}
	sort.Strings(genes)
	s.essentialGenes.set(genes)
	return nil
}

// EssentialGenes returns the cached essential genes.
func (s *Session) EssentialGenes() ([]string, error) {
	return getStrings(s.essentialGenes, "EssentialGenes")
}

// FindEssentialGeneReactions maps every essential gene to the reactions its
// knockout disables. Requires FindEssentialGenes.
func (s *Session) FindEssentialGeneReactions() error {
	genes, ok := s.essentialGenes.get()
	if !ok {
		return fmt.Errorf("FindEssentialGeneReactions: %w", ErrNotComputed)
	}
	m, err := knockout.GeneReactions(s.net, genes)
	if err != nil {
		return err
	}
	s.essentialGeneReactions.set(m)
	return nil
}

// EssentialGeneReactions returns the cached gene -> reactions map.
func (s *Session) EssentialGeneReactions() (map[string][]string, error) {
	m, ok := s.essentialGeneReactions.get()
	if !ok {
		return nil, fmt.Errorf("EssentialGeneReactions: %w", ErrNotComputed)
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func getStrings(o optional[[]string], op string) ([]string, error) {
	v, ok := o.get()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotComputed)
	}
	return append([]string{}, v...), nil
}

func copyResult(r deadend.Result) deadend.Result {
	out := make(deadend.Result, len(r))
	for k, v := range r {
		out[k] = append([]string{}, v...)
	}
	return out
}
