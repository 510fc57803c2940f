// Package metavuln finds the weak points of genome-scale metabolic networks:
// chokepoint reactions, dead-end metabolites, blocked reactions and the
// reactions and genes growth cannot do without.
//
// 🚀 What is metavuln?
//
//	A thread-safe engine that brings together:
//		• Core network: reactions, metabolites, genes, compartments, bounds
//		• Structure: direction classification, dead ends, chokepoints
//		• Constraint-based analysis: growth, flux variability, knockouts
//		• Refinement: FVA-constrained bounds and iterative dead-end removal
//		• Reports: four-stage critical points and growth-dependent sweeps
//
// ✨ Why choose metavuln?
//
//   - Deterministic: every set is sorted, every snapshot detached
//   - Pluggable solver: analyses depend on the fba.Oracle contract only
//   - Cancellable: long LP batches observe context.Context
//   - Observable: slog logging, Prometheus metrics, SQLite run history
//
// Under the hood, everything is organized as flat packages:
//
//	core/       Network arena, direction classifier, atomic bound updates
//	gpr/        gene-reaction rule parser and evaluator
//	deadend/    dead-end metabolite detection and iterative removal
//	chokepoint/ unique consumer/producer detection
//	knockout/   essential and growth-essential reaction selection
//	fba/        Oracle contract and gonum simplex implementation
//	matrix/     stoichiometric matrix for the LP equality block
//	analysis/   Session holding one network and its cached results
//	snapshot/   immutable per-stage views
//	setops/     difference, intersection, union and stage comparisons
//	pipeline/   initial, dem, fva and fva_dem critical point stages
//	sweep/      growth-dependent sweep over enforced fractions
//	converters/ JSON and YAML model files
//	report/     JSON and TSV reports
//	store/      SQLite run store
//	builder/    synthetic networks for tests and benchmarks
//
// Quick ASCII example:
//
//	    EX_A ──▶ A ──R1──▶ B ──R2──▶ C ──▶ BIOMASS
//	                       │
//	                       └──R3──▶ D   (D is a dead end, R3 is blocked)
//
//	go install github.com/katalvlaran/metavuln/cmd/metavuln@latest
package metavuln
