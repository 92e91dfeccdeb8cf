package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/uimap/internal/annotate"
	"github.com/mj1618/uimap/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %s (must be one of: text, yaml, json)", s)
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// WindowsResult is the structured output of the `list` command.
type WindowsResult struct {
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// TreeResult is the structured output of the `tree` command.
type TreeResult struct {
	App      string              `yaml:"app,omitempty"    json:"app,omitempty"`
	PID      int                 `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Window   string              `yaml:"window,omitempty" json:"window,omitempty"`
	TS       int64               `yaml:"ts"               json:"ts"`
	MaxDepth int                 `yaml:"max_depth"        json:"max_depth"`
	Controls []model.ControlInfo `yaml:"controls"         json:"controls"`
}

// AnnotateResult is the structured output of the `annotate` command.
type AnnotateResult struct {
	App         string                `yaml:"app,omitempty"    json:"app,omitempty"`
	PID         int                   `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Window      string                `yaml:"window,omitempty" json:"window,omitempty"`
	Path        string                `yaml:"path"             json:"path"`
	Total       int                   `yaml:"total"            json:"total"`
	Annotations []annotate.Annotation `yaml:"annotations"      json:"annotations"`
}

// Print serializes v to stdout in the current structured output format.
// Text output is produced by the Write* helpers instead.
func Print(v interface{}) error {
	return Fprint(os.Stdout, OutputFormat, v)
}

// Fprint serializes v to w as YAML or JSON.
func Fprint(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(w, v)
		}
		return PrintJSON(w, v)
	case FormatYAML:
		return PrintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// PrintJSON serializes v to w as compact single-line JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintPrettyJSON serializes v to w as indented JSON.
func PrintPrettyJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v to w as YAML.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
