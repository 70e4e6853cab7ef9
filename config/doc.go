// Package config holds the initialization settings for state machines and
// their tracing back-end.
//
// Configuration exists only while a machine is built: New resolves names
// (e.g. the observer) into runtime values and does not keep the struct.
// Every section follows the same pattern:
//
//   - DefaultXConfig returns sensible defaults
//   - Merge copies the non-zero fields of a loaded section over a default
//   - Validate reports settings that cannot be used
//
// Load reads a file through viant/afs, so any URL afs understands works,
// and picks the decoder from the extension:
//
//	cfg, err := config.Load(ctx, "file:///etc/statekit/movies.yaml")
//
// Supported formats are JSON (.json), YAML (.yaml, .yml) and TOML (.toml).
// An example YAML document:
//
//	machine:
//	  name: movies
//	  observer: slog
//	  shutdown_timeout: 5s
//	tracing:
//	  enabled: true
//	  service_name: movies
package config
