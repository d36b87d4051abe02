// Package dataset assembles the ordered, path-augmented row sequence that the
// reconciliation engine consumes. All sheets of one workbook are concatenated
// into a single row sequence, normalized, and run through the hierarchy path
// builder; the assembled dataset additionally carries the derived lookup views
// the tiered matcher needs.
package dataset

import (
	"maprecon/pkg/hierarchy"
	"maprecon/pkg/tabular"
)

// Key is the primary identity of a row: its hierarchy path plus its tag.
type Key struct {
	Path string
	Tag  string
}

// Row is one assembled row: the normalized cells plus derived identity.
type Row struct {
	tabular.Row
	Info hierarchy.PathInfo

	tag string
}

// Key returns the row's primary key. ok is false when the row has no path and
// therefore no primary identity.
func (r Row) Key() (Key, bool) {
	if !r.Info.HasPath {
		return Key{}, false
	}
	return Key{Path: r.Info.Path, Tag: r.Tag()}, true
}

// ParentChildKey returns the row's fallback key. ok is false when the row has
// no path.
func (r Row) ParentChildKey() (Key, bool) {
	if !r.Info.HasPath {
		return Key{}, false
	}
	return Key{Path: r.Info.ParentChildKey, Tag: r.Tag()}, true
}

// Tag returns the row's tag cell.
func (r Row) Tag() string {
	return r.tag
}

// Dataset is an assembled, immutable view over one workbook's rows.
type Dataset struct {
	// Columns is the union of all sheet columns in first-seen order.
	Columns []string

	// Rows holds every row of every sheet, in input order.
	Rows []Row

	// Diagnostics holds the malformed-level reports collected during
	// assembly. Never fatal; intended for collaborator-layer logging.
	Diagnostics []error

	byKey         map[Key]int
	byParentChild map[Key]int
	tagCount      map[string]int
	tagFirst      map[string]int
}

// Assembler turns parsed tables into a Dataset.
type Assembler struct {
	Builder *hierarchy.Builder
}

// NewAssembler creates an Assembler with the given path builder. A nil
// builder gets the default column names.
func NewAssembler(b *hierarchy.Builder) *Assembler {
	if b == nil {
		b = hierarchy.NewBuilder()
	}
	return &Assembler{Builder: b}
}

// Assemble concatenates the tables in order, normalizes every cell, builds
// hierarchy paths, and derives the lookup views. The input tables are not
// modified.
func (a *Assembler) Assemble(tables []*tabular.Table) *Dataset {
	ds := &Dataset{
		byKey:         make(map[Key]int),
		byParentChild: make(map[Key]int),
		tagCount:      make(map[string]int),
		tagFirst:      make(map[string]int),
	}

	seen := make(map[string]bool)
	var flat []tabular.Row
	for _, t := range tabular.NormalizeAll(tables) {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				ds.Columns = append(ds.Columns, c)
			}
		}
		flat = append(flat, t.Rows...)
	}

	infos, diags := a.Builder.Build(flat)
	ds.Diagnostics = diags

	for i, raw := range flat {
		row := Row{Row: raw, Info: infos[i], tag: raw.Get(a.Builder.TagColumn)}
		ds.Rows = append(ds.Rows, row)

		if tag := row.Tag(); tag != "" {
			ds.tagCount[tag]++
			if _, ok := ds.tagFirst[tag]; !ok {
				ds.tagFirst[tag] = i
			}
		}

		// First occurrence wins: later duplicates are discarded from the
		// clean view, matching the deduplication policy.
		if key, ok := row.Key(); ok {
			if _, dup := ds.byKey[key]; !dup {
				ds.byKey[key] = i
			}
		}
		if pck, ok := row.ParentChildKey(); ok && pck.Path != "" {
			if _, dup := ds.byParentChild[pck]; !dup {
				ds.byParentChild[pck] = i
			}
		}
	}

	return ds
}

// Lookup returns the first row deduplicated under the given primary key.
func (d *Dataset) Lookup(key Key) (Row, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return Row{}, false
	}
	return d.Rows[i], true
}

// LookupParentChild returns the first row under the given parent-child key.
func (d *Dataset) LookupParentChild(key Key) (Row, bool) {
	i, ok := d.byParentChild[key]
	if !ok {
		return Row{}, false
	}
	return d.Rows[i], true
}

// LookupIndex returns the clean-view row index for the given primary key.
func (d *Dataset) LookupIndex(key Key) (int, bool) {
	i, ok := d.byKey[key]
	return i, ok
}

// ParentChildIndex returns the row index for the given parent-child key.
func (d *Dataset) ParentChildIndex(key Key) (int, bool) {
	i, ok := d.byParentChild[key]
	return i, ok
}

// TagCount returns how many times the tag occurs across the whole dataset.
func (d *Dataset) TagCount(tag string) int {
	return d.tagCount[tag]
}

// UniqueTagIndex returns the index of the single row carrying the tag, and
// false when the tag occurs zero or more than one time.
func (d *Dataset) UniqueTagIndex(tag string) (int, bool) {
	if tag == "" || d.tagCount[tag] != 1 {
		return 0, false
	}
	return d.tagFirst[tag], true
}

// HasKey reports whether the primary key is present in the dataset.
func (d *Dataset) HasKey(key Key) bool {
	_, ok := d.byKey[key]
	return ok
}

// Keys returns every primary key in clean-view (first occurrence) row order.
func (d *Dataset) Keys() []Key {
	keys := make([]Key, 0, len(d.byKey))
	for i, row := range d.Rows {
		if key, ok := row.Key(); ok {
			if first, exists := d.byKey[key]; exists && first == i {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Table renders the dataset as a single table with the given name, using the
// dataset's own column set. Derived path fields are not part of the cells, so
// the rendered table matches the normalized input.
func (d *Dataset) Table(name string) *tabular.Table {
	t := &tabular.Table{Name: name, Columns: append([]string(nil), d.Columns...)}
	for _, row := range d.Rows {
		t.Rows = append(t.Rows, row.Row)
	}
	return t
}
