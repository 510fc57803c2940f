// Package report turns pipeline and sweep results into serialisable
// summaries and writes them as JSON or tab-separated tables.
//
// CriticalSummary condenses a four-stage run into per-stage counts and the
// only-before / both / only-after comparisons between stages for every
// vulnerability set. SweepTable renders a growth sweep as one row per
// fraction. Each summary carries a fresh run id.
package report
