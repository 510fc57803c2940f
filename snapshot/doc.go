// Package snapshot captures every computed property of a network at one
// pipeline stage as an immutable value.
//
// Build deep-copies the live Network and the results cached by a Source
// (normally an *analysis.Session). Results the Source has not computed are
// stored empty. A Snapshot never aliases the Network it came from, so later
// dead-end removal or bound tightening cannot change it, and every getter
// returns a fresh copy.
//
// MarshalJSON writes the flat report shape:
//
//	{"id", "stage", "objective", "objective_value", "reactions",
//	 "metabolites", "genes", "dem", "chokepoints", "fva",
//	 "essential_genes", "essential_genes_reactions", "knockout_growth",
//	 "essential_reactions", "dead_reactions", "reversible_reactions"}
//
// Non-finite numbers are written as the strings "NaN", "Infinity" and
// "-Infinity".
package snapshot
