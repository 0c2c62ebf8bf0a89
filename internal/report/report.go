// Package report renders two-column numeric series as table, JSON, CSV or
// YAML.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("report: unknown output format")

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV, FormatYAML}
}

// ParseFormat resolves a case-insensitive format name. "yml" is accepted
// for YAML.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Point is one row of a series.
type Point struct {
	X float64
	Y float64
}

// Series is a titled list of points with optional metadata.
type Series struct {
	Title  string
	XLabel string
	YLabel string
	// Precision is the number of decimals in table output.
	Precision int
	Meta      map[string]string
	Points    []Point
}

// Write renders s to w in the given format.
func Write(w io.Writer, format Format, s Series) error {
	switch format {
	case FormatTable:
		return writeTable(w, s)
	case FormatJSON:
		return writeJSON(w, s)
	case FormatCSV:
		return writeCSV(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func writeTable(w io.Writer, s Series) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if s.Title != "" {
		fmt.Fprintf(tw, "# %s\n", s.Title)
	}
	for _, k := range sortedKeys(s.Meta) {
		fmt.Fprintf(tw, "# %s: %s\n", k, s.Meta[k])
	}

	fmt.Fprintf(tw, "%s\t%s\t\n", s.XLabel, s.YLabel)
	for _, p := range s.Points {
		fmt.Fprintf(tw, "%s\t%s\t\n", formatFloat(p.X, s.Precision), formatFloat(p.Y, s.Precision))
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{s.XLabel, s.YLabel}); err != nil {
		return err
	}
	for _, p := range s.Points {
		row := []string{formatFloat(p.X, -1), formatFloat(p.Y, -1)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonPoint carries non-finite values as null since JSON has no encoding
// for them.
type jsonPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type document[P any] struct {
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	XLabel string            `json:"x_label" yaml:"x_label"`
	YLabel string            `json:"y_label" yaml:"y_label"`
	Meta   map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	Points []P               `json:"points" yaml:"points"`
}

func writeJSON(w io.Writer, s Series) error {
	doc := document[jsonPoint]{
		Title:  s.Title,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		Meta:   s.Meta,
		Points: make([]jsonPoint, len(s.Points)),
	}
	for i, p := range s.Points {
		doc.Points[i] = jsonPoint{X: finiteOrNil(p.X), Y: finiteOrNil(p.Y)}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func writeYAML(w io.Writer, s Series) error {
	doc := document[yamlPoint]{
		Title:  s.Title,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		Meta:   s.Meta,
		Points: make([]yamlPoint, len(s.Points)),
	}
	for i, p := range s.Points {
		doc.Points[i] = yamlPoint(p)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
