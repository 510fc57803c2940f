// Package knockout derives essential reactions and genes from single
// knockout growth values.
//
// The growth values themselves come from an optimization oracle (package
// fba); this package only applies the essentiality thresholds:
//
//	Essential:              NaN or growth < Epsilon
//	GrowthEssential(f):     NaN or growth + Epsilon < maxGrowth * f
//	OptimalGrowthEssential: NaN or growth < Epsilon or growth + Epsilon < maxGrowth
//
// All results are sorted reaction ids.
package knockout
