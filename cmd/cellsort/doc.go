// Package main hosts the cellsort CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, builds the slog
// logger, and hands off to the internal packages: organize and watch drive
// the organizer, classify and locate expose the classification engine and
// the data-start heuristic for single files, and history reads the run
// manifest. Logs go to stderr and the log file so stdout carries only
// tables and JSON.
package main
