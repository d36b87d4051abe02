package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maprecon/pkg/dataset"
	"maprecon/pkg/tabular"
)

func sheet(name string, columns []string, cells ...map[string]string) *tabular.Table {
	t := &tabular.Table{Name: name, Columns: columns}
	for _, c := range cells {
		r := tabular.NewRow(name)
		for k, v := range c {
			r.Set(k, v)
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

var mappingColumns = []string{"Lvl", "XML Tag", "Name", "Value"}

func TestAssembleConcatenatesSheets(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("First", mappingColumns,
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "Root", "Value": "1"},
		),
		sheet("Second", []string{"Lvl", "XML Tag", "Name", "Comment"},
			map[string]string{"Lvl": "0", "XML Tag": "B", "Name": "Other", "Comment": "x"},
		),
	})

	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "First", ds.Rows[0].Sheet)
	assert.Equal(t, "Second", ds.Rows[1].Sheet)

	// Column union in first-seen order.
	assert.Equal(t, []string{"Lvl", "XML Tag", "Name", "Value", "Comment"}, ds.Columns)
}

func TestPrimaryKeyLookup(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "Root", "Value": "1"},
			map[string]string{"Lvl": "1", "XML Tag": "B", "Name": "Child", "Value": "2"},
		),
	})

	row, ok := ds.Lookup(dataset.Key{Path: "A__Root > B__Child", Tag: "B"})
	require.True(t, ok)
	assert.Equal(t, "2", row.Get("Value"))

	_, ok = ds.Lookup(dataset.Key{Path: "A__Root > B__Child", Tag: "X"})
	assert.False(t, ok)
}

func TestDeduplicationFirstOccurrenceWins(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "Root", "Value": "first"},
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "Root", "Value": "second"},
		),
	})

	row, ok := ds.Lookup(dataset.Key{Path: "A__Root", Tag: "A"})
	require.True(t, ok)
	assert.Equal(t, "first", row.Get("Value"))

	// Both rows remain in the ordered sequence; only the clean view dedupes.
	assert.Len(t, ds.Rows, 2)
	assert.Len(t, ds.Keys(), 1)
}

func TestTagCounts(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "One"},
			map[string]string{"Lvl": "0", "XML Tag": "B", "Name": "Two"},
			map[string]string{"Lvl": "0", "XML Tag": "B", "Name": "Three"},
			map[string]string{"Lvl": "0", "XML Tag": "", "Name": "Untagged"},
		),
	})

	assert.Equal(t, 1, ds.TagCount("A"))
	assert.Equal(t, 2, ds.TagCount("B"))
	assert.Equal(t, 0, ds.TagCount(""))

	idx, ok := ds.UniqueTagIndex("A")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = ds.UniqueTagIndex("B")
	assert.False(t, ok)
	_, ok = ds.UniqueTagIndex("")
	assert.False(t, ok)
}

func TestRowsWithoutLevelHaveNoKey(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "", "XML Tag": "A", "Name": "Floating"},
		),
	})

	_, ok := ds.Rows[0].Key()
	assert.False(t, ok)
	assert.Empty(t, ds.Keys())

	// Still counted for loose-tag matching.
	assert.Equal(t, 1, ds.TagCount("A"))
}

func TestAssembleNormalizesCells(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": " 0 ", "XML Tag": " A ", "Name": " Root ", "Value": "  X  "},
		),
	})

	row := ds.Rows[0]
	assert.Equal(t, "A", row.Tag())
	assert.Equal(t, "X", row.Get("Value"))

	key, ok := row.Key()
	require.True(t, ok)
	assert.Equal(t, "A__Root", key.Path)
}

func TestMalformedLevelProducesDiagnostic(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "abc", "XML Tag": "A", "Name": "Bad"},
		),
	})

	assert.Len(t, ds.Diagnostics, 1)
}

func TestTableRendersDatasetColumns(t *testing.T) {
	a := dataset.NewAssembler(nil)

	ds := a.Assemble([]*tabular.Table{
		sheet("S", mappingColumns,
			map[string]string{"Lvl": "0", "XML Tag": "A", "Name": "Root", "Value": "X"},
		),
	})

	table := ds.Table("Merged Output")
	assert.Equal(t, "Merged Output", table.Name)
	assert.Equal(t, ds.Columns, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "X", table.Rows[0].Get("Value"))
}
