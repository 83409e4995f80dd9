// Package manifest records organizer runs and per-file outcomes in SQLite.
//
// Each organize invocation (or watch batch) opens a run keyed by a UUID;
// every processed file appends one row carrying its classification, the
// destinations written, and the outcome. The database lives under
// state_dir and is treated as an audit trail: old runs are pruned by
// retention, and schema changes bump schemaVersion, after which users delete
// the database.
package manifest
