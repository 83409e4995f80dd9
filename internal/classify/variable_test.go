package classify_test

import (
	"testing"

	"cellsort/internal/classify"
)

func TestClassifyVariable(t *testing.T) {
	cases := []struct {
		content string
		want    classify.Variable
	}{
		{"Frequency (Hz),Zreal,Current,Voltage", classify.VariableEIS},
		{"ZPLOT export", classify.VariableEIS},
		{"Current (A), Voltage (V)", classify.VariableIV},
		{"Current only", classify.VariableMisc},
		{"OCV measurement", classify.VariablePolar},
		{"Polarization curve", classify.VariablePolar},
		{"Temperature log", classify.VariableTemperature},
		{"Air flow", classify.VariableFlow},
		{"H2 FLW setpoint", classify.VariableFlow},
		{"nothing relevant", classify.VariableMisc},
		{"", classify.VariableMisc},
	}
	for _, tc := range cases {
		if got := classify.ClassifyVariable(tc.content, true); got != tc.want {
			t.Fatalf("ClassifyVariable(%q) = %s, want %s", tc.content, got, tc.want)
		}
	}
}

func TestClassifyVariableUnreadable(t *testing.T) {
	if got := classify.ClassifyVariable("Frequency", false); got != classify.VariableMisc {
		t.Fatalf("expected misc for unreadable content, got %s", got)
	}
}

func TestRefineVariable(t *testing.T) {
	cases := []struct {
		name string
		want classify.Variable
	}{
		{"sh12_flw", classify.VariableFlow},
		{"sh12_flow_temp", classify.VariableFlow},
		{"cell_temp", classify.VariableTemperature},
		{"sh12_80c", classify.VariableTemperature},
		{"sh12_25 t", classify.VariableTemperature},
		{"sh12_iv", classify.VariableIV},
		{"x_vcte", classify.VariableIV},
		{"x_eis", classify.VariableEIS},
		{"x_icte", classify.VariableEIS},
		{"sweep frequency", classify.VariableEIS},
		{"x_polar", classify.VariablePolar},
		{"x_ocv", classify.VariablePolar},
		{"healthy", classify.VariableMisc},
	}
	for _, tc := range cases {
		if got := classify.RefineVariable(classify.VariableMisc, tc.name); got != tc.want {
			t.Fatalf("RefineVariable(misc, %q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRefineVariableKeepsContentResult(t *testing.T) {
	if got := classify.RefineVariable(classify.VariableIV, "sh12_flow"); got != classify.VariableIV {
		t.Fatalf("expected content result to stand, got %s", got)
	}
}
