// Package chokepoint detects chokepoint reactions.
//
// A chokepoint fact (R, M) states that reaction R is the only reaction that
// consumes metabolite M, or the only reaction that produces it, among the
// reactions considered. Roles follow current reaction directions, as in
// package deadend.
//
// Find pairs consumer and producer occurrence lists with a sort-merge walk
// in O(k log k) for k occurrences. By default only metabolites that are both
// consumed and produced are evaluated; WithDeadEndMetabolites extends the
// rule to metabolites seen on one side only.
package chokepoint
