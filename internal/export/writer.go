// Package export serializes round summaries to their output formats.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jcleary/roundsheet/internal/rounds"
)

// Format represents output format types.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer serializes round summaries.
type Writer interface {
	// Write outputs a single round.
	Write(r rounds.Summary) error

	// WriteAll outputs multiple rounds.
	WriteAll(rs []rounds.Summary) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile writes all rounds to path in the given format. Any failure
// here is fatal for the run: without a durable file the run produced no
// result.
func WriteFile(path string, format Format, rs []rounds.Summary) error {
	f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified output file
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w, err := NewWriter(f, format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(rs); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
