// Package classify infers structured metadata for fuel-cell test exports from
// their noisy filenames, parent folders, and file content.
//
// Each field of FileMetadata has its own classifier. Keyword chains are
// expressed as ordered Rule tables evaluated first-match-wins so that
// precedence between overlapping keywords (for example "ocv" versus "iv") is
// visible in one place and testable on its own. Pattern searches keep
// leftmost-match semantics where the position of a token in the filename
// decides the outcome, and use an explicit ordered trial where a structured
// token should beat an incidental one (cell identifiers).
//
// Classification never fails. Absence of evidence yields the configured
// Fallbacks, and unreadable content degrades to the content-free result.
package classify
