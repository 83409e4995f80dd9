package classify

import (
	"path"
	"strings"
)

// TestName is the experiment category a file belongs to.
type TestName string

const (
	TestStarvation TestName = "starvation"
	TestShort      TestName = "short"
	TestThermal    TestName = "thermal"
	TestRedox      TestName = "redox"
	TestHealthy    TestName = "healthy"
	TestUnknown    TestName = "unknown"
)

// Variable is the measured quantity recorded in a file.
type Variable string

const (
	VariableEIS         Variable = "eis"
	VariableIV          Variable = "iv"
	VariablePolar       Variable = "polar"
	VariableTemperature Variable = "temperature"
	VariableFlow        Variable = "flow"
	VariableMisc        Variable = "misc"
)

// OperatingCondition is the electrical or thermal mode applied during acquisition.
type OperatingCondition string

const (
	ConditionOC   OperatingCondition = "OC"
	ConditionIV   OperatingCondition = "IV"
	ConditionVCTE OperatingCondition = "VCTE"
	ConditionICTE OperatingCondition = "ICTE"
	ConditionHeat OperatingCondition = "HEAT"
	ConditionTemp OperatingCondition = "TEMP"
)

// Repository defaults used when nothing in a file identifies a field.
const (
	DefaultCellID             = "UNKNOWN"
	DefaultTestSpec           = "T750Air100V07"
	DefaultDate               = "20241218"
	DefaultOperatingCondition = ConditionOC
)

// Fallbacks holds the values substituted when a classifier finds no evidence.
type Fallbacks struct {
	CellID             string
	TestSpec           string
	Date               string
	OperatingCondition OperatingCondition
}

// DefaultFallbacks returns the repository defaults.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		CellID:             DefaultCellID,
		TestSpec:           DefaultTestSpec,
		Date:               DefaultDate,
		OperatingCondition: DefaultOperatingCondition,
	}
}

// withDefaults fills blank fields so a zero Fallbacks behaves like DefaultFallbacks.
func (f Fallbacks) withDefaults() Fallbacks {
	def := DefaultFallbacks()
	if strings.TrimSpace(f.CellID) == "" {
		f.CellID = def.CellID
	}
	if strings.TrimSpace(f.TestSpec) == "" {
		f.TestSpec = def.TestSpec
	}
	if strings.TrimSpace(f.Date) == "" {
		f.Date = def.Date
	}
	if strings.TrimSpace(string(f.OperatingCondition)) == "" {
		f.OperatingCondition = def.OperatingCondition
	}
	return f
}

// FileMetadata is the classification result for one source file. Every
// field is always populated.
type FileMetadata struct {
	CellID             string             `json:"cell_id"`
	TestName           TestName           `json:"test_name"`
	Variable           Variable           `json:"variable"`
	TestSpec           string             `json:"test_spec"`
	OperatingCondition OperatingCondition `json:"operating_condition"`
	Date               string             `json:"date"`
}

// Stem returns the canonical name without extension:
// {cell_id}_{test_name}_{variable}_{test_spec}_{operating_condition}_{date}.
func (m FileMetadata) Stem() string {
	return strings.Join([]string{
		m.CellID,
		string(m.TestName),
		string(m.Variable),
		m.TestSpec,
		string(m.OperatingCondition),
		m.Date,
	}, "_")
}

// CanonicalExt is the extension of every organized copy, whatever the
// source extension was.
const CanonicalExt = "CSV"

// CanonicalName returns the organized copy's name: Stem + ".CSV".
func (m FileMetadata) CanonicalName() string {
	return m.FileName(CanonicalExt)
}

// FileName returns the canonical file name with the given extension, which
// may be supplied with or without the leading dot.
func (m FileMetadata) FileName(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return m.Stem()
	}
	return m.Stem() + "." + ext
}

// Dir returns the slash-separated destination directory relative to an
// output root: {test_name}/{variable}.
func (m FileMetadata) Dir() string {
	return path.Join(string(m.TestName), string(m.Variable))
}
