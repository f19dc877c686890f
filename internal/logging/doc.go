// Package logging assembles structured slog loggers and formatting helpers used
// across ffkit.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so process runs can tag every
// log line with a run identifier. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
