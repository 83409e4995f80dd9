// Package logs reads the cellsort log file for the logs command.
//
// Last returns the final lines with bounded memory, ReadFrom resumes from a
// byte offset, and Follow streams appended lines until its context ends.
// Lines can be narrowed to a single run with MatchRun.
package logs
