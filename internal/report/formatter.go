// Package report renders reconciliation results for the CLI: a summary plus
// differences table for terminals, JSON or YAML for pipelines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"maprecon/pkg/errors"
	"maprecon/pkg/reconcile"
)

// Format types for output.
type Format string

const (
	// FormatTable represents human-readable table output.
	FormatTable Format = "table"
	// FormatJSON represents JSON output.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "":
		return FormatTable, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml")
	}
}

// Formatter renders a reconciliation result to a writer.
type Formatter interface {
	Format(w io.Writer, result *reconcile.Result) error
}

// NewFormatter creates the appropriate formatter for the format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, result *reconcile.Result) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(result)
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, result *reconcile.Result) error {
	data, err := yaml.MarshalWithOptions(result,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// TableFormatter outputs a summary line followed by the differences table.
type TableFormatter struct{}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, result *reconcile.Result) error {
	if _, err := fmt.Fprintln(w, result.String()); err != nil {
		return err
	}
	if !result.HasDifferences() {
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("Hierarchy Path", "Tag", "Column", "Test Value", "Source Value", "Type")

	for _, d := range result.Differences {
		if err := table.Append(d.Path, d.Tag, d.Column, d.TestValue, d.SourceValue, string(d.Type)); err != nil {
			return err
		}
	}

	return table.Render()
}
