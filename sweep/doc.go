// Package sweep measures how the vulnerability sets of a network change as
// the required growth fraction rises.
//
// Run analyses the loaded network once (the "Initial" row), then for every
// fraction in Fractions reloads a fresh network, tightens its bounds to the
// flux variability ranges at that fraction and reclassifies it: reversible,
// dead and non-reversible reactions plus chokepoint reactions. Essential
// reactions per fraction come from a single knockout run on the initial
// network.
//
// A row whose flux variability fails carries Err ("Error running FVA: ...")
// and empty sets; the sweep continues. Rows are independent networks, so
// WithParallelism runs them concurrently.
package sweep
