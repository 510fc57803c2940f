// SPDX-License-Identifier: MIT
// Package builder generates deterministic metabolic network fixtures.
//
// One orchestrator, BuildNetwork(id, opts, cons...), creates a core.Network,
// resolves the builder configuration and applies constructors in order.
// Constructors:
//
//   - Linear(k):           uptake -> M0 -> M1 -> ... -> Mk -> sink
//   - DeadBranch(from, k): Mfrom -> D1 -> ... -> Dk, ending in a dead end
//   - ReversibleLink(a, b): a reversible reaction between two metabolites
//   - RandomSparse(m, r):  m metabolites, r random reactions (needs WithSeed)
//
// Toy() adds a fixed glycolysis-shaped network with genes, an objective, a
// blocked reaction and a prunable dead-end branch. Its optimal growth is 20
// and its essential genes are b1, b4, b5 and b6.
package builder
