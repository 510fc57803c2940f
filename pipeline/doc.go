// Package pipeline runs the four-stage critical point analysis.
//
// Stages, each frozen as a snapshot.Snapshot:
//
//	initial  the model as loaded: dead ends, chokepoints, essential
//	         reactions, essential genes and their reactions
//	dem      the same network after dead-end removal, re-analysed
//	fva      a freshly loaded copy with bounds tightened by flux
//	         variability at the configured growth fraction, re-analysed
//	fva_dem  the fva network after dead-end removal, re-analysed
//
// Solver failures are recorded per stage in Result.Errors and never stop
// the run. When flux variability fails, the fva and fva_dem stages hold the
// unanalysed reloaded network together with the error. A cancelled context
// stops the run between oracle calls; the snapshots of completed stages are
// returned with the context error.
package pipeline
