package classify

import (
	"regexp"
	"strings"
)

var reTemperatureHint = regexp.MustCompile(`\d{2,3}\s*t|\d{2,3}c`)

// contentVariableRules classify the lowercased file content.
var contentVariableRules = []Rule[Variable]{
	{"eis-keywords", contentHas("frequency", "zplot", "sweep"), VariableEIS},
	{"current-and-voltage", func(in ruleInput) bool {
		return strings.Contains(in.content, "current") && strings.Contains(in.content, "voltage")
	}, VariableIV},
	{"polar-keywords", contentHas("ocv", "polar"), VariablePolar},
	{"temperature-keywords", contentHas("temp", "temperature"), VariableTemperature},
	{"flow-keywords", contentHas("flow", "flw"), VariableFlow},
}

// filenameVariableRules refine a misc result from the lowercased filename stem.
var filenameVariableRules = []Rule[Variable]{
	{"flow-name", nameHas("flow", "flw"), VariableFlow},
	{"temperature-name", func(in ruleInput) bool {
		return containsAny(in.name, "temp", "temperature") || reTemperatureHint.MatchString(in.name)
	}, VariableTemperature},
	{"iv-name", nameHas("iv", "vcte"), VariableIV},
	{"eis-name", nameHas("eis", "icte", "zplot", "sweep frequency"), VariableEIS},
	{"polar-name", nameHas("polar", "ocv"), VariablePolar},
}

// ClassifyVariable infers the measured variable from file content. It
// returns VariableMisc for unreadable content or when no keyword matches.
func ClassifyVariable(content string, readable bool) Variable {
	if !readable {
		return VariableMisc
	}
	v, _ := firstMatch(contentVariableRules, ruleInput{content: strings.ToLower(content)}, VariableMisc)
	return v
}

// RefineVariable applies the filename rules when v is VariableMisc; any
// other value is returned unchanged.
func RefineVariable(v Variable, name string) Variable {
	if v != VariableMisc {
		return v
	}
	refined, _ := firstMatch(filenameVariableRules, ruleInput{name: strings.ToLower(name)}, VariableMisc)
	return refined
}
