package reconcile

import (
	"github.com/agentstation/utc"

	"maprecon/pkg/constants"
	"maprecon/pkg/dataset"
	"maprecon/pkg/tabular"
)

// Reconciler produces a best-effort row correspondence between two assembled
// datasets and enumerates every cell-level difference plus every unmatched
// row.
type Reconciler interface {
	// Reconcile compares the test dataset against the source dataset.
	// Matching is test-to-source; source rows never matched by any tier are
	// reported as missing.
	Reconcile(source, test *dataset.Dataset) *Result
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	tiers   []tier
	ignored map[string]bool
}

// New creates a Reconciler with the default tier cascade. By default the
// standard level column spellings, the tag column, and the derived path
// columns are excluded from comparison.
func New(opts ...Option) Reconciler {
	r := &reconciler{
		tiers: defaultTiers(),
		ignored: map[string]bool{
			constants.DefaultLevelColumn:   true,
			"Level":                        true,
			constants.DefaultTagColumn:     true,
			constants.HierarchyPathColumn:  true,
			constants.ParentChildKeyColumn: true,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile implements Reconciler. The procedure is deterministic: test rows
// are processed strictly in input order, tiers strictly in cascade order, and
// missing source rows strictly in clean-view order.
func (r *reconciler) Reconcile(source, test *dataset.Dataset) *Result {
	result := &Result{GeneratedAt: utc.Now()}
	columns := r.comparableColumns(source, test)

	consumed := make(map[int]bool, len(source.Rows))

	for _, row := range test.Rows {
		srcIdx, matchedTier := r.match(row, source, test)
		if matchedTier == nil {
			// Row-presence label takes precedence: no cell comparisons for
			// a row whose key is absent from the source entirely.
			result.Summary.UnmatchedTest++
			for _, col := range columns {
				r.emit(result, Difference{
					Path:      row.Info.Path,
					Tag:       row.Tag(),
					Column:    col,
					TestValue: row.Get(col),
					Type:      ChangeTypeNewInTest,
				})
			}
			continue
		}

		consumed[srcIdx] = true
		r.countMatch(&result.Summary, matchedTier.Name())

		src := source.Rows[srcIdx]
		changed := matchedTier.ChangedLabel()
		for _, col := range columns {
			testValue, sourceValue := row.Get(col), src.Get(col)
			if label := classify(testValue, sourceValue, changed); label != "" {
				r.emit(result, Difference{
					Path:        row.Info.Path,
					Tag:         row.Tag(),
					Column:      col,
					TestValue:   testValue,
					SourceValue: sourceValue,
					Type:        label,
				})
			}
		}
	}

	// Source keys never consumed by any tier and absent from the test key
	// set are missing from test: one record per comparable column.
	for _, key := range source.Keys() {
		idx, _ := source.LookupIndex(key)
		if consumed[idx] || test.HasKey(key) {
			continue
		}
		result.Summary.UnmatchedSource++
		src := source.Rows[idx]
		for _, col := range columns {
			r.emit(result, Difference{
				Path:        key.Path,
				Tag:         key.Tag,
				Column:      col,
				SourceValue: src.Get(col),
				Type:        ChangeTypeMissingInTest,
			})
		}
	}

	result.Reconciled = r.reconciledTable(test)
	return result
}

// match runs the tier cascade for one test row; the first tier that matches
// wins.
func (r *reconciler) match(row dataset.Row, source, test *dataset.Dataset) (int, tier) {
	for _, t := range r.tiers {
		if idx, ok := t.Match(row, source, test); ok {
			return idx, t
		}
	}
	return 0, nil
}

// comparableColumns returns the columns eligible for cell-level diffing: the
// intersection of both datasets' columns, in test column order, minus the
// structural fields and spreadsheet-artifact placeholders.
func (r *reconciler) comparableColumns(source, test *dataset.Dataset) []string {
	sourceHas := make(map[string]bool, len(source.Columns))
	for _, c := range source.Columns {
		sourceHas[c] = true
	}

	var columns []string
	for _, c := range test.Columns {
		if !sourceHas[c] || r.ignored[c] || tabular.IsPlaceholderColumn(c) {
			continue
		}
		columns = append(columns, c)
	}
	return columns
}

// reconciledTable renders the output table: test rows with the identity and
// derived columns stripped.
func (r *reconciler) reconciledTable(test *dataset.Dataset) *tabular.Table {
	return test.Table(constants.MergedOutputSheet).
		DropColumns(constants.HierarchyPathColumn, constants.ParentChildKeyColumn)
}

func (r *reconciler) emit(result *Result, d Difference) {
	result.Differences = append(result.Differences, d)
	result.Summary.count(d.Type)
}

func (r *reconciler) countMatch(s *Summary, name TierName) {
	switch name {
	case TierPrimary:
		s.MatchedPrimary++
	case TierParentChild:
		s.MatchedParentChild++
	case TierLooseTag:
		s.MatchedLooseTag++
	}
}
