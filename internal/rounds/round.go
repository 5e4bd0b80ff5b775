// Package rounds implements round discovery and scorecard extraction: the
// listing pagination crawl, the embedded-payload parse, and the per-round
// summary model handed to the export sinks.
package rounds

import (
	"github.com/jcleary/roundsheet/internal/stats"
)

// Reference points at one round's detail page. The URL is the unique key.
type Reference struct {
	URL string
}

// Hole is one scored hole of a round.
type Hole struct {
	Number int `json:"hole_number" yaml:"hole_number"`
	Score  int `json:"score" yaml:"score"`
	Par    int `json:"par" yaml:"par"`
}

// Valid reports whether the hole carries usable data. A zero score or par
// means the hole was not recorded and contributes nothing downstream.
func (h Hole) Valid() bool {
	return h.Score > 0 && h.Par > 0
}

// Summary is one fully extracted round. Immutable once built.
type Summary struct {
	URL        string        `json:"url" yaml:"url"`
	Course     string        `json:"course" yaml:"course"`
	Date       Date          `json:"date" yaml:"date"`
	TotalScore int           `json:"total_score" yaml:"total_score"`
	TotalPar   int           `json:"total_par" yaml:"total_par"`
	ScoreVsPar int           `json:"score_vs_par" yaml:"score_vs_par"`
	Holes      []Hole        `json:"holes" yaml:"holes"`
	Stats      stats.Buckets `json:"stats" yaml:"stats"`
}

// NewSummary builds a Summary from hole data, computing totals and
// classification counts over the valid holes only. Any hole count is
// accepted; a 9-hole round simply carries 9 hole records.
func NewSummary(url, course string, date Date, holes []Hole) Summary {
	s := Summary{
		URL:    url,
		Course: course,
		Date:   date,
		Holes:  holes,
	}
	for _, h := range holes {
		if !h.Valid() {
			continue
		}
		s.TotalScore += h.Score
		s.TotalPar += h.Par
		s.Stats.Record(h.Score, h.Par)
	}
	s.ScoreVsPar = s.TotalScore - s.TotalPar
	return s
}
