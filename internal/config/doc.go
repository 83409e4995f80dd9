// Package config loads, normalizes, and validates cellsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CELLSORT_INPUT_DIR environment
// fallback. The Config type centralizes every knob the CLI, organizer, and
// classifier need, including the fallback values substituted when a file
// carries no evidence for a metadata field.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
