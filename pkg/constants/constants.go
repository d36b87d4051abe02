// Package constants provides shared constants used throughout the maprecon
// codebase. This includes the default spreadsheet column names, path
// separators, file permissions, and other values that should be consistent
// across the application.
package constants

// Default column names as they appear in SWIFT mapping sheets.
const (
	// DefaultLevelColumn is the column holding the nesting level of a row.
	DefaultLevelColumn = "Lvl"

	// DefaultNameColumn is the column holding the human-readable element name.
	DefaultNameColumn = "Name"

	// DefaultTagColumn is the column holding the short element tag.
	DefaultTagColumn = "XML Tag"

	// HierarchyPathColumn is the derived column carrying the full ancestry path.
	HierarchyPathColumn = "Hierarchy Path"

	// ParentChildKeyColumn is the derived column carrying the parent+self key.
	ParentChildKeyColumn = "Parent Child Key"

	// PlaceholderColumnPrefix marks spreadsheet-artifact columns that carry
	// no data and must never be compared.
	PlaceholderColumnPrefix = "Unnamed"
)

// Path construction constants.
const (
	// ComponentSeparator joins a row's tag and name into one path component.
	ComponentSeparator = "__"

	// PathSeparator joins path components into a rendered hierarchy path.
	PathSeparator = " > "
)

// Report sheet names written by the output assembler.
const (
	// StrippedSourceSheet holds the normalized source rows without derived columns.
	StrippedSourceSheet = "Stripped Source"

	// MergedOutputSheet holds the reconciled table.
	MergedOutputSheet = "Merged Output"

	// DifferencesSheet holds one row per difference record.
	DifferencesSheet = "Differences"

	// MaxSheetNameLength is the xlsx limit on sheet name length.
	MaxSheetNameLength = 31
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644
)
