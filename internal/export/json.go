package export

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jcleary/roundsheet/internal/rounds"
)

// JSONWriter writes the full round detail, holes included, as one ordered
// JSON array.
type JSONWriter struct {
	w     *bufio.Writer
	items []rounds.Summary
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     bufio.NewWriter(w),
		items: make([]rounds.Summary, 0),
	}
}

// Write buffers a single round.
func (w *JSONWriter) Write(r rounds.Summary) error {
	w.items = append(w.items, r)
	return nil
}

// WriteAll buffers multiple rounds.
func (w *JSONWriter) WriteAll(rs []rounds.Summary) error {
	w.items = append(w.items, rs...)
	return nil
}

// Flush writes the buffered rounds as a pretty-printed array. A single
// round still serializes as an array so consumers get a stable shape.
func (w *JSONWriter) Flush() error {
	output, err := json.MarshalIndent(w.items, "", "  ")
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}
