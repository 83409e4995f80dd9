package classify

import "strings"

// testNameRules map folder and filename keywords to an experiment category.
var testNameRules = []Rule[TestName]{
	{"starvation", either(folderHas("hydrogen starvation", "air starvation"), nameHas("starvation")), TestStarvation},
	{"short", either(folderHas("short circuit"), nameHas("short")), TestShort},
	{"thermal", either(folderHas("thermal shock", "thermal gradient", "steady state"), nameHas("thermal")), TestThermal},
	{"redox", either(folderHas("redox"), nameHas("redox")), TestRedox},
	{"healthy", nameHas("healthy"), TestHealthy},
}

// ClassifyTestName infers the experiment category from the folder path and
// filename stem.
func ClassifyTestName(folder, name string) TestName {
	in := ruleInput{folder: strings.ToLower(folder), name: strings.ToLower(name)}
	tn, _ := firstMatch(testNameRules, in, TestUnknown)
	return tn
}
