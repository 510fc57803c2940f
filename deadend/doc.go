// Package deadend finds dead-end metabolites and prunes them from a Network.
//
// A metabolite is a dead end when, given current reaction directions, it is
// only ever consumed or only ever produced across the whole network:
//
//	consumed := every metabolite consumed by some reaction
//	produced := every metabolite produced by some reaction
//	dead     := (consumed \ produced) ∪ (produced \ consumed)
//
// Reversible reactions put every participant in both sets, so a metabolite
// touched by any reversible reaction is never a dead end. Metabolites with no
// reactions at all are in neither set and are not reported.
//
// Remove runs Find to a fixed point, deleting dead ends and the reactions
// they leave without reactants or products.
package deadend
