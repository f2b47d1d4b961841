package ux

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formatter serializes command output for scripting. Human-readable text
// rendering stays in the commands; this covers the machine formats behind
// the -o flag.
type Formatter interface {
	Format(data any) error
}

// NewFormatter returns the formatter for the named machine format.
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return &jsonFormatter{w: w}, nil
	case "yaml":
		return &yamlFormatter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (supported: text, json, yaml)", format)
	}
}

type jsonFormatter struct {
	w io.Writer
}

func (f *jsonFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

type yamlFormatter struct {
	w io.Writer
}

func (f *yamlFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}
