// Package logging assembles structured slog loggers and formatting helpers used
// across cellsort.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so the organizer can tag log
// lines with the run identifier and source file automatically. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
