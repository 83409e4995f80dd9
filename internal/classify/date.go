package classify

import (
	"regexp"
	"strings"
	"time"
)

const contentDateMarker = "Date:"

var (
	reFilenameDate = regexp.MustCompile(`\d{8}|\d{4}\.\d{2}\.\d{2}`)
	reContentDate  = regexp.MustCompile(`Date:\s*(\d{2}-\d{2}-\d{4})`)
)

// ExtractDate returns a YYYYMMDD date for the file, or "" when neither the
// filename nor the content carries one. A date in the filename always wins
// over the content.
func ExtractDate(s Subject) string {
	if date := DateFromFilename(s.Stem()); date != "" {
		return date
	}
	if !s.Readable {
		return ""
	}
	return DateFromContent(s.Content)
}

// DateFromFilename finds the first 8-digit run or dddd.dd.dd group in name
// and returns it with the separators removed. The value is not calendar
// checked.
func DateFromFilename(name string) string {
	match := reFilenameDate.FindString(name)
	return strings.ReplaceAll(match, ".", "")
}

// DateFromContent scans lines for a "Date:" marker followed by MM-DD-YYYY
// and returns the date as YYYYMMDD. Lines whose marker is not followed by
// that shape are skipped. A value that is not a real calendar date ends the
// scan with "".
func DateFromContent(content string) string {
	for line := range strings.Lines(content) {
		if !strings.Contains(line, contentDateMarker) {
			continue
		}
		m := reContentDate.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parsed, err := time.Parse("01-02-2006", m[1])
		if err != nil {
			return ""
		}
		return parsed.Format("20060102")
	}
	return ""
}
