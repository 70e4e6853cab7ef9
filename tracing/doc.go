// Package tracing wraps OpenTelemetry so the state-machine core can record
// one span per job without importing the SDK directly. Until Init or
// InitWithExporter installs a provider, spans go to OTel's global no-op
// provider and cost next to nothing.
package tracing
