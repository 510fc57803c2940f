// Package analysis holds the state of one analysis run over one live
// Network.
//
// A Session owns the Network and one optional field per derived result
// (dead ends, chokepoints, FVA ranges, knockout growth, essential reactions
// and genes). Each field is set only by its producing method and is never
// invalidated automatically: after mutating the Network, callers re-run the
// producers they need. Reading a result that was never produced returns
// ErrNotComputed.
//
// A Session is not safe for concurrent use. Independent Sessions over
// independent Networks may run in parallel.
package analysis
