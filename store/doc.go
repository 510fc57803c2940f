// Package store persists analysis runs in a single SQLite file.
//
// Tables:
//
//	runs        (id, kind, model, created_at)
//	snapshots   (run_id, stage, payload)   payload is snapshot JSON
//	sweep_rows  (run_id, idx, label, payload)
//
// Run ids are UUIDs. Every write is an upsert, so saving the same run,
// stage or row again replaces it. The driver is the pure Go
// modernc.org/sqlite.
package store
