package convert

import (
	"regexp"
	"strings"
)

// headerMarkers identify the column header line of common potentiostat
// exports. Matching is case-sensitive.
var headerMarkers = []string{"E(Volts)", "Time"}

// reNumericRow matches lines that look like delimited numeric data: a run of
// digit, sign, decimal, exponent, space, or comma characters followed by a
// comma, or two such runs separated by whitespace.
var reNumericRow = regexp.MustCompile(`[\d\s,.E+\-]+\s*,|[\d\s,.E+\-]+\s+[\d\s,.E+\-]`)

// StartReason explains why LocateDataStart stopped at a line.
type StartReason string

const (
	ReasonHeaderMarker StartReason = "header_marker"
	ReasonNumericRow   StartReason = "numeric_row"
)

// LocateDataStart returns the zero-based index of the first line that is a
// header marker line or looks like numeric data. ok is false when no line
// qualifies; callers must skip conversion in that case.
func LocateDataStart(lines []string) (index int, ok bool) {
	index, _, ok = LocateDataStartReason(lines)
	return index, ok
}

// LocateDataStartReason is LocateDataStart that also reports which test matched.
func LocateDataStartReason(lines []string) (int, StartReason, bool) {
	for idx, line := range lines {
		for _, marker := range headerMarkers {
			if strings.Contains(line, marker) {
				return idx, ReasonHeaderMarker, true
			}
		}
		// Rows are tested with their newline, so "SH12 " counts as a numeric row.
		if reNumericRow.MatchString(line + "\n") {
			return idx, ReasonNumericRow, true
		}
	}
	return 0, "", false
}
