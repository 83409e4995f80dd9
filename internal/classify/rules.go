package classify

import "strings"

// Subject is the evidence available for one file. Folder and Filename are
// taken as given; classifiers lowercase them as needed.
type Subject struct {
	// Folder is the directory containing the file.
	Folder string
	// Filename is the base name including extension.
	Filename string
	// Content is the decoded file text. It is ignored when Readable is false.
	Content  string
	Readable bool
}

// Stem returns the lowercased filename with its extension removed.
func (s Subject) Stem() string {
	return stem(s.Filename)
}

func stem(filename string) string {
	name := filename
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	// Leading dots are part of the name (".hidden" has no extension).
	if dot := strings.LastIndexByte(name, '.'); dot > 0 && strings.Trim(name[:dot], ".") != "" {
		name = name[:dot]
	}
	return strings.ToLower(name)
}

// Rule pairs a predicate with the value it yields. Rules are evaluated in
// order by firstMatch; first match wins.
type Rule[T any] struct {
	Name   string
	Match  func(in ruleInput) bool
	Result T
}

// ruleInput carries the lowercased evidence a rule predicate may inspect.
type ruleInput struct {
	folder   string
	name     string
	content  string
	variable Variable
}

// firstMatch returns the result and name of the first matching rule, or the
// fallback and an empty name when no rule matches.
func firstMatch[T any](rules []Rule[T], in ruleInput, fallback T) (T, string) {
	for _, rule := range rules {
		if rule.Match(in) {
			return rule.Result, rule.Name
		}
	}
	return fallback, ""
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func nameHas(needles ...string) func(ruleInput) bool {
	return func(in ruleInput) bool { return containsAny(in.name, needles...) }
}

func contentHas(needles ...string) func(ruleInput) bool {
	return func(in ruleInput) bool { return containsAny(in.content, needles...) }
}

func folderHas(needles ...string) func(ruleInput) bool {
	return func(in ruleInput) bool { return containsAny(in.folder, needles...) }
}

func either(preds ...func(ruleInput) bool) func(ruleInput) bool {
	return func(in ruleInput) bool {
		for _, pred := range preds {
			if pred(in) {
				return true
			}
		}
		return false
	}
}
