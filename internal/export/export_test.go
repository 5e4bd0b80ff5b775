package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jcleary/roundsheet/internal/rounds"
)

func sampleRound(t *testing.T) rounds.Summary {
	t.Helper()

	date, err := rounds.ParseDate("Oct 12, 2024")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}

	holes := make([]rounds.Hole, 0, 18)
	scores := []int{4, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5, 6, 6, 7, 7, 7}
	for i, score := range scores {
		holes = append(holes, rounds.Hole{Number: i + 1, Score: score, Par: 4})
	}

	return rounds.NewSummary("https://play.golfshot.com/profiles/abc/rounds/r1", "Pebble Creek", date, holes)
}

// --- NewWriter Factory Tests ---

func TestNewWriter_Formats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "*export.CSVWriter"},
		{FormatJSON, "*export.JSONWriter"},
		{FormatYAML, "*export.YAMLWriter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if got := reflect.TypeOf(w).String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected error containing 'unsupported', got %v", err)
	}
}

// --- CSVWriter Tests ---

func TestCSVWriter_Row(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf)

	if err := w.Write(sampleRound(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	wantHeader := []string{
		"Date", "Course", "Total Score", "Par", "Score vs Par",
		"Eagles or Better", "Birdies", "Pars",
		"Bogeys", "Double Bogeys", "Triple+ Bogeys",
	}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v", records[0])
	}

	wantRow := []string{"Oct 12, 2024", "Pebble Creek", "91", "72", "19", "0", "0", "7", "6", "2", "3"}
	if !reflect.DeepEqual(records[1], wantRow) {
		t.Errorf("row = %v, want %v", records[1], wantRow)
	}
}

func TestCSVWriter_HeaderOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf)

	r := sampleRound(t)
	if err := w.WriteAll([]rounds.Summary{r, r, r}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("expected header + 3 rows, got %d", len(records))
	}
}

func TestCSVWriter_EmptyRun_HeaderOnly(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf)

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_RoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	original := sampleRound(t)
	if err := w.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var back []rounds.Summary
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("expected 1 round, got %d", len(back))
	}

	got := back[0]
	if !got.Date.Equal(original.Date.Time) {
		t.Errorf("date changed: %v vs %v", got.Date, original.Date)
	}
	got.Date = original.Date
	if !reflect.DeepEqual(got, original) {
		t.Errorf("round trip changed summary:\n got %+v\nwant %+v", got, original)
	}
}

func TestJSONWriter_SingleRound_StillArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(sampleRound(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	output := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(output, "[") {
		t.Errorf("expected array output, got %q", output[:1])
	}
}

func TestJSONWriter_HoleDetail(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(sampleRound(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}

	holes, ok := raw[0]["holes"].([]any)
	if !ok || len(holes) != 18 {
		t.Fatalf("expected 18-entry holes array, got %v", raw[0]["holes"])
	}

	first, _ := holes[0].(map[string]any)
	for _, key := range []string{"hole_number", "score", "par"} {
		if _, ok := first[key]; !ok {
			t.Errorf("hole entry missing %q: %v", key, first)
		}
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter_Sequence(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	r := sampleRound(t)
	if err := w.WriteAll([]rounds.Summary{r, r}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var back []rounds.Summary
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(back))
	}
	if back[0].Course != "Pebble Creek" {
		t.Errorf("course = %q", back[0].Course)
	}
	if back[0].TotalScore != 91 {
		t.Errorf("total score = %d", back[0].TotalScore)
	}
}
