package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"cellsort/internal/manifest"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed}},
}

// renderStatusLine formats "  Label:      [KIND] message", padded so the
// brackets line up down a block of lines.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	return paint(line, kind, colorize)
}

func paint(s string, kind statusKind, colorize bool) string {
	if !colorize {
		return s
	}
	return statusStyles[kind].colors.Sprint(s)
}

func outcomeStatus(outcome manifest.Outcome) statusKind {
	switch outcome {
	case manifest.OutcomeConverted:
		return statusOK
	case manifest.OutcomeCopied, manifest.OutcomeSkipped:
		return statusWarn
	case manifest.OutcomeFailed:
		return statusError
	default:
		return statusInfo
	}
}

// countsLines renders one line per tally. Nonzero skipped and failed counts
// are raised to WARN and ERROR.
func countsLines(counts manifest.Counts, colorize bool) []string {
	tally := []struct {
		label string
		n     int
		kind  statusKind
	}{
		{"Discovered", counts.Discovered, statusInfo},
		{"Copied", counts.Copied, statusOK},
		{"Converted", counts.Converted, statusOK},
		{"Skipped", counts.Skipped, raiseIf(counts.Skipped > 0, statusInfo, statusWarn)},
		{"Failed", counts.Failed, raiseIf(counts.Failed > 0, statusOK, statusError)},
	}
	lines := make([]string, 0, len(tally))
	for _, t := range tally {
		lines = append(lines, renderStatusLine(t.label, t.kind, strconv.Itoa(t.n), colorize))
	}
	return lines
}

func raiseIf(cond bool, base, raised statusKind) statusKind {
	if cond {
		return raised
	}
	return base
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(line))
	return []string{paint(line, statusInfo, colorize), paint(rule, statusInfo, colorize)}
}

// shouldColorize is false for NO_COLOR, non-files and non-terminals.
func shouldColorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
