// Package pipeline wires the stages of a run together: authenticate once,
// paginate the listing, then visit each round sequentially on the single
// browsing session.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/jcleary/roundsheet/internal/auth"
	"github.com/jcleary/roundsheet/internal/browser"
	"github.com/jcleary/roundsheet/internal/logger"
	"github.com/jcleary/roundsheet/internal/rounds"
)

// Config holds run configuration.
type Config struct {
	LoginURL   string
	ListingURL string
	MaxPages   int
	Delay      time.Duration // politeness pause between round visits
	Timeout    time.Duration // bound on the post-login wait
}

// Pipeline drives one full run over a single authenticated session.
type Pipeline struct {
	driver browser.Driver
	cfg    Config
}

// New creates a Pipeline.
func New(d browser.Driver, cfg Config) *Pipeline {
	return &Pipeline{driver: d, cfg: cfg}
}

// Report is the outcome of a run. Rounds preserves discovery order;
// Failures records every round that was skipped, for the final summary.
type Report struct {
	Rounds   []rounds.Summary
	Failures []*rounds.ExtractionFailure
}

// Run executes the pipeline. Authentication errors are fatal; per-round
// extraction failures are recorded and skipped. On cancellation the report
// collected so far is returned alongside the error so the caller can still
// surface (or export) partial results.
func (p *Pipeline) Run(ctx context.Context, creds auth.Credentials) (*Report, error) {
	report := &Report{}

	authCfg := auth.Config{LoginURL: p.cfg.LoginURL, Timeout: p.cfg.Timeout}
	if err := auth.Login(ctx, p.driver, creds, authCfg); err != nil {
		return report, err
	}

	locator := rounds.NewLocator(p.driver, rounds.LocatorConfig{MaxPages: p.cfg.MaxPages})
	refs, err := locator.Locate(ctx, p.cfg.ListingURL)
	if err != nil {
		return report, err
	}

	extractor := rounds.NewExtractor(p.driver)
	for i, ref := range refs {
		logger.Info("processing round", "index", i+1, "total", len(refs), "url", ref.URL)

		summary, err := extractor.Extract(ctx, ref.URL)
		if err != nil {
			var failure *rounds.ExtractionFailure
			if errors.As(err, &failure) {
				report.Failures = append(report.Failures, failure)
				logger.Warn("round skipped", "url", failure.URL, "reason", failure.Reason)
				continue
			}
			return report, err
		}
		report.Rounds = append(report.Rounds, summary)

		if p.cfg.Delay > 0 && i < len(refs)-1 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(p.cfg.Delay):
			}
		}
	}

	logger.Info("run complete",
		"extracted", len(report.Rounds),
		"failed", len(report.Failures))
	return report, nil
}
