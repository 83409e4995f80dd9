package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// ErrNoData reports content with no line that qualifies as a data start.
	ErrNoData = errors.New("no tabular data found")
	// ErrEmptyTable reports a located table that has a header but no rows.
	ErrEmptyTable = errors.New("table has no rows")
)

// reFieldSeparator splits a row on a whitespace run, a tab, or a comma.
var reFieldSeparator = regexp.MustCompile(`\s+|\t|,`)

// Table holds the rows found below a located header line.
type Table struct {
	// Header is the split header line; it is not written by WriteTSV.
	Header []string
	Rows   [][]string
	// StartLine is the zero-based line index the header was read from.
	StartLine int
}

// SplitFields splits one row into fields. Surrounding whitespace is trimmed
// first so leading indentation does not produce an empty first column.
func SplitFields(line string) []string {
	return reFieldSeparator.Split(strings.TrimSpace(line), -1)
}

// ParseTable reads the table that begins at start. The line at start is the
// header; every following non-blank line is a row.
func ParseTable(lines []string, start int) (*Table, error) {
	if start < 0 || start >= len(lines) {
		return nil, fmt.Errorf("start line %d out of range for %d lines: %w", start, len(lines), ErrNoData)
	}
	table := &Table{
		Header:    SplitFields(lines[start]),
		StartLine: start,
	}
	for _, line := range lines[start+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		table.Rows = append(table.Rows, SplitFields(line))
	}
	if len(table.Rows) == 0 {
		return table, ErrEmptyTable
	}
	return table, nil
}

// Locate finds the data start in lines and parses the table from there.
func Locate(lines []string) (*Table, error) {
	start, ok := LocateDataStart(lines)
	if !ok {
		return nil, ErrNoData
	}
	return ParseTable(lines, start)
}

// WriteTSV writes the table rows tab-delimited, without the header.
func (t *Table) WriteTSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write tsv: %w", err)
	}
	return nil
}
