package classify

import (
	"regexp"
	"strings"
)

// cellPattern is one alternative of the cell identifier family.
type cellPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// cellPatterns are the alternatives of one cell identifier family. The
// leftmost match in the string wins; list order breaks ties at the same
// position, so "sh12" is SH12 rather than the digit run inside it.
var cellPatterns = []cellPattern{
	{"sh", regexp.MustCompile(`sh\d+(?:-?\d+)?`)},
	{"mf", regexp.MustCompile(`mf\d+-\d+`)},
	{"b", regexp.MustCompile(`b\d+`)},
	{"d", regexp.MustCompile(`d\d+`)},
	{"ss", regexp.MustCompile(`ss\d+`)},
	{"c", regexp.MustCompile(`c\d+`)},
	{"x", regexp.MustCompile(`x\d+`)},
	{"t", regexp.MustCompile(`t\d+`)},
	{"cell", regexp.MustCompile(`cell-?\d+`)},
	{"digits", regexp.MustCompile(`\d+`)},
}

var reNameTokenSplit = regexp.MustCompile(`[_\s]`)

// CellIDSource records which step produced a cell identifier.
type CellIDSource string

const (
	CellIDFromFilename CellIDSource = "filename"
	CellIDFromFolder   CellIDSource = "folder"
	CellIDFromToken    CellIDSource = "token"
	CellIDFallback     CellIDSource = "fallback"
)

// MatchCellID returns the leftmost cell identifier in s, normalized with
// hyphens removed and uppercased.
func MatchCellID(s string) (string, bool) {
	s = strings.ToLower(s)
	best, bestStart := "", -1
	for _, p := range cellPatterns {
		loc := p.Pattern.FindStringIndex(s)
		if loc == nil || (bestStart >= 0 && loc[0] >= bestStart) {
			continue
		}
		best, bestStart = s[loc[0]:loc[1]], loc[0]
	}
	if bestStart < 0 {
		return "", false
	}
	return strings.ToUpper(strings.ReplaceAll(best, "-", "")), true
}

// ResolveCellID infers a cell identifier from the filename stem, then the
// folder segments from the innermost outwards, then the first
// underscore/space-delimited token of the stem. fallback is returned when
// all three come up empty.
func ResolveCellID(name, folder, fallback string) (string, CellIDSource) {
	name = strings.ToLower(name)
	if id, ok := MatchCellID(name); ok {
		return id, CellIDFromFilename
	}

	segments := strings.Split(strings.ReplaceAll(folder, `\`, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if id, ok := MatchCellID(segments[i]); ok {
			return id, CellIDFromFolder
		}
	}

	if first := reNameTokenSplit.Split(name, 2)[0]; first != "" {
		return strings.ToUpper(first), CellIDFromToken
	}
	return fallback, CellIDFallback
}
