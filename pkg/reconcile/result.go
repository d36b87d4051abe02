package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"

	"maprecon/pkg/tabular"
)

// Result holds everything one reconciliation run produced: the reconciled
// output table, the ordered difference records, and summary statistics.
type Result struct {
	// Reconciled is the output table handed to the output assembler: the
	// test dataset's rows and columns, identity/path fields stripped.
	Reconciled *tabular.Table `json:"-" yaml:"-"`

	// Differences is the ordered list of discrepancy records.
	Differences []Difference `json:"differences" yaml:"differences"`

	// Summary holds per-type and per-tier counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// GeneratedAt is when the reconciliation ran.
	GeneratedAt utc.Time `json:"generated_at" yaml:"generated_at"`
}

// Summary provides counts for a reconciliation result.
type Summary struct {
	Changed         int `json:"changed" yaml:"changed"`
	NewInTest       int `json:"new_in_test" yaml:"new_in_test"`
	MissingInTest   int `json:"missing_in_test" yaml:"missing_in_test"`
	ChangedFallback int `json:"changed_fallback" yaml:"changed_fallback"`
	ChangedLoose    int `json:"changed_loose" yaml:"changed_loose"`

	// Matched counts matched test rows per tier.
	MatchedPrimary     int `json:"matched_primary" yaml:"matched_primary"`
	MatchedParentChild int `json:"matched_parent_child" yaml:"matched_parent_child"`
	MatchedLooseTag    int `json:"matched_loose_tag" yaml:"matched_loose_tag"`

	// UnmatchedTest counts test rows no tier could resolve.
	UnmatchedTest int `json:"unmatched_test" yaml:"unmatched_test"`

	// UnmatchedSource counts source clean-view rows absent from test.
	UnmatchedSource int `json:"unmatched_source" yaml:"unmatched_source"`

	// TotalDifferences is the number of difference records.
	TotalDifferences int `json:"total_differences" yaml:"total_differences"`
}

// HasDifferences returns true when the run produced any difference records.
func (r *Result) HasDifferences() bool {
	return r.Summary.TotalDifferences > 0
}

// count registers one difference record in the summary.
func (s *Summary) count(t ChangeType) {
	switch t {
	case ChangeTypeChanged:
		s.Changed++
	case ChangeTypeNewInTest:
		s.NewInTest++
	case ChangeTypeMissingInTest:
		s.MissingInTest++
	case ChangeTypeChangedFallback:
		s.ChangedFallback++
	case ChangeTypeChangedLoose:
		s.ChangedLoose++
	}
	s.TotalDifferences++
}

// String returns a human-readable summary of the result.
func (r *Result) String() string {
	if !r.HasDifferences() {
		return "No differences detected"
	}

	s := r.Summary
	var parts []string
	if s.Changed > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", s.Changed))
	}
	if s.ChangedFallback > 0 {
		parts = append(parts, fmt.Sprintf("%d changed via fallback", s.ChangedFallback))
	}
	if s.ChangedLoose > 0 {
		parts = append(parts, fmt.Sprintf("%d changed via loose match", s.ChangedLoose))
	}
	if s.NewInTest > 0 {
		parts = append(parts, fmt.Sprintf("%d new in test", s.NewInTest))
	}
	if s.MissingInTest > 0 {
		parts = append(parts, fmt.Sprintf("%d missing in test", s.MissingInTest))
	}

	return fmt.Sprintf("Differences: %s (total: %d)", strings.Join(parts, ", "), s.TotalDifferences)
}
