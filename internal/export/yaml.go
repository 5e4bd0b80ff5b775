package export

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jcleary/roundsheet/internal/rounds"
)

// YAMLWriter writes the full round detail as a YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []rounds.Summary
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]rounds.Summary, 0),
	}
}

// Write buffers a single round.
func (w *YAMLWriter) Write(r rounds.Summary) error {
	w.items = append(w.items, r)
	return nil
}

// WriteAll buffers multiple rounds.
func (w *YAMLWriter) WriteAll(rs []rounds.Summary) error {
	w.items = append(w.items, rs...)
	return nil
}

// Flush writes the buffered rounds as a YAML sequence.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.items); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
