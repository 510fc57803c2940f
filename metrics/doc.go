// Package metrics exposes Prometheus instruments for oracle calls,
// pipeline stages and sweep rows.
//
// Each Metrics value owns its registry, so runs and tests never collide
// on the default registerer. The observers plug straight into
// fba.WithObserver, pipeline.WithObserver and sweep.WithObserver; a
// finished batch run can dump everything with WriteTextfile for the node
// exporter textfile collector.
package metrics
