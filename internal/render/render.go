// Package render writes row sets as aligned tables, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat maps a flag or config value onto a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Formats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown output format %q (valid: table, json, yaml)", types.ErrInvalidArgument, s)
}

// Tabular is satisfied by every *types.RowSet.
type Tabular interface {
	Header() []string
	Records() [][]string
	Data() any
}

// Write renders t to w in format f.
func Write(w io.Writer, f Format, t Tabular) error {
	switch f {
	case FormatJSON, FormatYAML:
		return Value(w, f, t.Data())
	default:
		return Table(w, t.Header(), t.Records())
	}
}

// Table writes an aligned table with a dashed rule under the header. An
// empty result prints "(no rows)" under the header.
func Table(w io.Writer, header []string, records [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	return nil
}

// Value writes any value, typically an InsertResult or a count, as JSON or
// YAML. The table format falls back to JSON.
func Value(w io.Writer, f Format, v any) error {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
