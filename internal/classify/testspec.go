package classify

import (
	"regexp"
	"strings"
)

// specComponent extracts one typed token of the test specification. The
// alternation in Pattern is leftmost-first, so "h250" reads as hydrogen 50
// (h2 followed by 50) rather than h 250.
type specComponent struct {
	Prefix  string
	Pattern *regexp.Regexp
	Format  func(value string) string
}

// specComponents are concatenated in this order: temperature, air,
// hydrogen, nitrogen, voltage.
var specComponents = []specComponent{
	{Prefix: "T", Pattern: regexp.MustCompile(`(\d{2,3})c|(\d{2,3})\s*t`)},
	{Prefix: "Air", Pattern: regexp.MustCompile(`air\s*(\d+)|a\s*(\d+)`)},
	{Prefix: "H", Pattern: regexp.MustCompile(`h2\s*(\d+)|h\s*(\d+)`)},
	{Prefix: "N", Pattern: regexp.MustCompile(`n2\s*(\d+)|n\s*(\d+)`)},
	{
		Prefix:  "V",
		Pattern: regexp.MustCompile(`v\s*(\d+\.\d+)|e\s*=\s*(\d+\.\d+)`),
		Format:  func(value string) string { return strings.ReplaceAll(value, ".", "") },
	},
}

// SpecTokens returns the test specification tokens present in name, in
// fixed component order. Absent components contribute nothing.
func SpecTokens(name string) []string {
	name = strings.ToLower(name)
	var tokens []string
	for _, comp := range specComponents {
		value := firstGroup(comp.Pattern.FindStringSubmatch(name))
		if value == "" {
			continue
		}
		if comp.Format != nil {
			value = comp.Format(value)
		}
		tokens = append(tokens, comp.Prefix+value)
	}
	return tokens
}

// BuildTestSpec concatenates the tokens found in name, or returns fallback
// when none are present.
func BuildTestSpec(name, fallback string) string {
	tokens := SpecTokens(name)
	if len(tokens) == 0 {
		return fallback
	}
	return strings.Join(tokens, "")
}

// firstGroup returns the first non-empty capture group of a submatch slice.
func firstGroup(m []string) string {
	if len(m) < 2 {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
