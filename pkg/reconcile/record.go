// Package reconcile implements the hierarchical reconciliation engine: a
// tiered row matcher between two assembled datasets and the classifier that
// labels every compared cell. The engine is a pure computation over immutable
// inputs; it performs no I/O and is safe to invoke concurrently across
// independent dataset pairs.
package reconcile

// ChangeType labels one difference record.
type ChangeType string

const (
	// ChangeTypeChanged indicates both sides hold a value and they differ.
	ChangeTypeChanged ChangeType = "Changed"

	// ChangeTypeNewInTest indicates a value (or whole row) present only on
	// the test side.
	ChangeTypeNewInTest ChangeType = "New in Test"

	// ChangeTypeMissingInTest indicates a value (or whole row) present only
	// on the source side.
	ChangeTypeMissingInTest ChangeType = "Missing in Test"

	// ChangeTypeChangedFallback is a Changed determination reached via the
	// parent-child fallback tier rather than the primary key.
	ChangeTypeChangedFallback ChangeType = "Changed (Fallback)"

	// ChangeTypeChangedLoose is a Changed determination reached via the
	// tag-uniqueness fallback tier.
	ChangeTypeChangedLoose ChangeType = "Changed (Loose Match)"
)

// Style returns the report style name for the change type. The engine knows
// nothing of how styles render; this is the contract with the output
// assembler.
func (c ChangeType) Style() string {
	switch c {
	case ChangeTypeChanged:
		return "changed"
	case ChangeTypeNewInTest:
		return "added"
	case ChangeTypeMissingInTest:
		return "removed"
	case ChangeTypeChangedFallback:
		return "fallback-changed"
	case ChangeTypeChangedLoose:
		return "loose-changed"
	default:
		return ""
	}
}

// Difference is one reported discrepancy for one column of one logical row.
// Produced append-only, never mutated.
type Difference struct {
	// Path is the hierarchy path of the row. May be empty when only a
	// fallback key was usable.
	Path string `json:"hierarchy_path" yaml:"hierarchy_path"`

	// Tag is the row's tag.
	Tag string `json:"tag" yaml:"tag"`

	// Column is the compared column name.
	Column string `json:"column" yaml:"column"`

	// TestValue is the value on the test side, "" when absent.
	TestValue string `json:"test_value" yaml:"test_value"`

	// SourceValue is the value on the source side, "" when absent.
	SourceValue string `json:"source_value" yaml:"source_value"`

	// Type labels the change.
	Type ChangeType `json:"type" yaml:"type"`
}

// classify labels one (testValue, sourceValue) pair for a matched row pair.
// The zero ChangeType means the cell is unchanged and no record is emitted.
// changed is the tier-dependent label to use when both sides hold a value.
func classify(testValue, sourceValue string, changed ChangeType) ChangeType {
	if testValue == sourceValue {
		return ""
	}
	if sourceValue == "" {
		return ChangeTypeNewInTest
	}
	if testValue == "" {
		return ChangeTypeMissingInTest
	}
	return changed
}
