package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jcleary/roundsheet/internal/rounds"
)

// csvHeader matches the original spreadsheet import layout; one row per
// round, statistics flattened into columns.
var csvHeader = []string{
	"Date", "Course", "Total Score", "Par", "Score vs Par",
	"Eagles or Better", "Birdies", "Pars",
	"Bogeys", "Double Bogeys", "Triple+ Bogeys",
}

// CSVWriter writes one summary row per round.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write outputs a single round row, emitting the header first if needed.
func (w *CSVWriter) Write(r rounds.Summary) error {
	if !w.wroteHeader {
		if err := w.w.Write(csvHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}

	record := []string{
		r.Date.String(),
		r.Course,
		strconv.Itoa(r.TotalScore),
		strconv.Itoa(r.TotalPar),
		strconv.Itoa(r.ScoreVsPar),
		strconv.Itoa(r.Stats.EagleOrBetter),
		strconv.Itoa(r.Stats.Birdie),
		strconv.Itoa(r.Stats.Par),
		strconv.Itoa(r.Stats.Bogey),
		strconv.Itoa(r.Stats.DoubleBogey),
		strconv.Itoa(r.Stats.TripleOrWorse),
	}
	return w.w.Write(record)
}

// WriteAll outputs multiple round rows.
func (w *CSVWriter) WriteAll(rs []rounds.Summary) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered rows. A file with only the header is still
// written for an empty run.
func (w *CSVWriter) Flush() error {
	if !w.wroteHeader {
		if err := w.w.Write(csvHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
