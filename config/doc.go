// Package config holds the run configuration of the metavuln command.
//
// A Config starts from Default, is overlaid with a YAML file by Load and is
// checked by Validate. Command-line flags are applied by the caller after
// Load and before Validate.
//
//	fraction: 0.9
//	parallelism: 4
//	log:
//	  level: debug
//	  format: json
//	solver:
//	  bound_cap: 1000000
//	store:
//	  path: runs.db
package config
