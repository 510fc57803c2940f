// Package gpr parses and evaluates gene-reaction rules.
//
// A rule is a boolean expression over gene identifiers:
//
//	rule   := term { ("or" | "OR") term }
//	term   := factor { ("and" | "AND") factor }
//	factor := gene | "(" rule ")"
//
// An empty rule carries no gene dependence and is always active. A reaction
// is active after a set of gene knockouts when its rule still evaluates to
// true with the knocked-out genes set to false.
package gpr
