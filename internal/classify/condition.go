package classify

import "strings"

// conditionRules map filename keywords, and the resolved variable, to an
// operating condition. "oc" is a plain substring test: any name containing it
// resolves to OC before the later rules are consulted.
var conditionRules = []Rule[OperatingCondition]{
	{"open-circuit", nameHas("ocv", "oc"), ConditionOC},
	{"iv", nameHas("iv"), ConditionIV},
	{"voltage-cycling", nameHas("vcte", "cycle"), ConditionVCTE},
	{"impedance", nameHas("icte", "eis", "zplot", "sweep frequency"), ConditionICTE},
	{"heating", nameHas("heating", "heat"), ConditionHeat},
	{"temperature-variable", func(in ruleInput) bool {
		return in.variable == VariableTemperature && !containsAny(in.name, "ocv", "iv", "eis")
	}, ConditionTemp},
}

// ClassifyOperatingCondition infers the operating condition from the
// filename stem and the already-resolved variable. fallback is returned when
// no rule matches.
func ClassifyOperatingCondition(name string, variable Variable, fallback OperatingCondition) OperatingCondition {
	in := ruleInput{name: strings.ToLower(name), variable: variable}
	oc, _ := firstMatch(conditionRules, in, fallback)
	return oc
}
