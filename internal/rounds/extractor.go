package rounds

import (
	"context"

	"github.com/jcleary/roundsheet/internal/browser"
	"github.com/jcleary/roundsheet/internal/logger"
)

// Extractor visits round detail pages and turns their embedded scorecard
// payloads into Summaries.
type Extractor struct {
	driver browser.Driver
}

// NewExtractor creates an Extractor using the authenticated session.
func NewExtractor(d browser.Driver) *Extractor {
	return &Extractor{driver: d}
}

// Extract visits one round URL and builds its Summary. Per-round problems
// come back as *ExtractionFailure so the batch can continue; only caller
// cancellation surfaces as a plain error.
func (e *Extractor) Extract(ctx context.Context, roundURL string) (Summary, error) {
	logger.Debug("extracting round", "url", roundURL)

	if err := e.driver.Navigate(ctx, roundURL); err != nil {
		if ctx.Err() != nil {
			return Summary{}, ctx.Err()
		}
		return Summary{}, &ExtractionFailure{URL: roundURL, Reason: "page failed to load", Err: err}
	}
	html, err := e.driver.HTML(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Summary{}, ctx.Err()
		}
		return Summary{}, &ExtractionFailure{URL: roundURL, Reason: "page unreadable", Err: err}
	}

	blob, ok := scorecardJSON(html)
	if !ok {
		return Summary{}, &ExtractionFailure{URL: roundURL, Reason: "no embedded scorecard payload"}
	}

	payload, err := parsePayload(blob)
	if err != nil {
		return Summary{}, &ExtractionFailure{URL: roundURL, Reason: "malformed payload", Err: err}
	}

	date, err := ParseDate(payload.Model.Detail.FormattedStartTime)
	if err != nil {
		return Summary{}, &ExtractionFailure{URL: roundURL, Reason: "unparseable round date", Err: err}
	}

	summary := NewSummary(roundURL, payload.Model.Detail.CourseName, date, payload.holes())
	logger.Debug("round extracted",
		"url", roundURL,
		"course", summary.Course,
		"holes", len(summary.Holes),
		"score", summary.TotalScore)
	return summary, nil
}
