package excel

import (
	"github.com/xuri/excelize/v2"

	"maprecon/pkg/errors"
)

// styleFills maps report style names to background fill colors, following the
// standard Excel conditional-formatting palette.
var styleFills = map[string]string{
	"changed":          "FFEB9C", // amber
	"added":            "C6EFCE", // green
	"removed":          "FFC7CE", // red
	"fallback-changed": "FCD5B4", // orange
	"loose-changed":    "E4DFEC", // violet
}

// newStyles registers one fill style per change type and returns the style
// IDs keyed by style name.
func newStyles(f *excelize.File) (map[string]int, error) {
	styles := make(map[string]int, len(styleFills))
	for name, color := range styleFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{color},
				Pattern: 1,
			},
		})
		if err != nil {
			return nil, errors.NewConfigError("excel styles", "failed to register fill style "+name, err)
		}
		styles[name] = id
	}
	return styles, nil
}
