// Package preflight checks that the configured directories are usable
// before a run touches them.
//
// organize and watch refuse to start when a check fails; config validate
// prints every result.
package preflight
