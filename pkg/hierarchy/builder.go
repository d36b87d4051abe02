// Package hierarchy reconstructs row identity from flat, level-annotated
// mapping rows. A sheet records a pre-order tree walk: each row carries a
// nesting level, and processing rows in order against a level-indexed stack
// recovers every row's full ancestry path without building an explicit tree.
package hierarchy

import (
	"sort"
	"strconv"
	"strings"

	"maprecon/pkg/constants"
	"maprecon/pkg/errors"
	"maprecon/pkg/tabular"
)

// PathInfo is the derived identity of one row.
type PathInfo struct {
	// Path is the full ancestry path, components joined by the path
	// separator. Empty when HasPath is false.
	Path string

	// ParentChildKey is the join of the last two non-empty path components,
	// or the full path when fewer exist. Used as a fallback identity when
	// the full path fails to match.
	ParentChildKey string

	// HasPath is false for rows with an absent or malformed level. Such rows
	// are structurally unplaceable and can never be matched by path.
	HasPath bool
}

// Builder computes hierarchy paths for ordered row sequences.
type Builder struct {
	// LevelColumn holds the nesting level of a row.
	LevelColumn string

	// NameColumn holds the element name.
	NameColumn string

	// TagColumn holds the element tag.
	TagColumn string
}

// NewBuilder creates a Builder using the default SWIFT sheet column names.
func NewBuilder() *Builder {
	return &Builder{
		LevelColumn: constants.DefaultLevelColumn,
		NameColumn:  constants.DefaultNameColumn,
		TagColumn:   constants.DefaultTagColumn,
	}
}

// Build computes a PathInfo for every row, strictly in input order. Reordering
// rows changes results: order encodes tree shape.
//
// A row with an absent level receives no path and leaves the stack untouched.
// A malformed level is coerced to "absent" rather than aborting the run; each
// occurrence is reported in the returned diagnostics so callers can log it.
// Build itself never fails.
func (b *Builder) Build(rows []tabular.Row) ([]PathInfo, []error) {
	infos := make([]PathInfo, len(rows))
	var diags []error

	// stack maps level to the current path component at that level.
	stack := make(map[int]string)

	for i, row := range rows {
		raw := strings.TrimSpace(row.Get(b.LevelColumn))
		if raw == "" {
			continue
		}

		level, ok := parseLevel(raw)
		if !ok {
			diags = append(diags, errors.NewMalformedLevelError(i, raw))
			continue
		}

		tag := row.Get(b.TagColumn)
		name := row.Get(b.NameColumn)
		stack[level] = tag + constants.ComponentSeparator + name

		// Entering level L closes every open branch deeper than L.
		for lvl := range stack {
			if lvl > level {
				delete(stack, lvl)
			}
		}

		components := render(stack)
		infos[i] = PathInfo{
			Path:           strings.Join(components, constants.PathSeparator),
			ParentChildKey: parentChildKey(components),
			HasPath:        true,
		}
	}

	return infos, diags
}

// parseLevel interprets a level cell as a non-negative integer. Spreadsheet
// exports often render integer levels as floats ("2.0"), so integral float
// forms are accepted.
func parseLevel(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n >= 0
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// render returns the stack's components in ascending level order. Levels are
// whatever integers appear in the data; no dense range is assumed.
func render(stack map[int]string) []string {
	levels := make([]int, 0, len(stack))
	for lvl := range stack {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	components := make([]string, 0, len(levels))
	for _, lvl := range levels {
		components = append(components, stack[lvl])
	}
	return components
}

// parentChildKey joins the last two non-empty components, or everything that
// exists when there are fewer than two.
func parentChildKey(components []string) string {
	nonEmpty := make([]string, 0, len(components))
	for _, c := range components {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}

	if len(nonEmpty) > 2 {
		nonEmpty = nonEmpty[len(nonEmpty)-2:]
	}
	return strings.Join(nonEmpty, constants.PathSeparator)
}
