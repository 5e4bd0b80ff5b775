// Package browser owns the headless Chrome session used for a run.
//
// One Session backs the whole pipeline: the login establishes cookies in its
// browser context, and every later navigation reuses them. A Session is not
// safe for concurrent use; navigation on a shared context would leave the
// page in an undefined state.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jcleary/roundsheet/internal/logger"
)

// Driver is the subset of browser operations the pipeline stages need.
// *Session implements it; tests substitute fakes.
type Driver interface {
	// Navigate loads a URL and waits for the page body to render.
	Navigate(ctx context.Context, url string) error

	// Fill waits for the selector to become visible and types into it.
	Fill(ctx context.Context, selector, value string) error

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)

	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)
}

// Config holds session configuration.
type Config struct {
	UserAgent  string
	Timeout    time.Duration // bound on each individual browser operation
	SettleWait time.Duration // extra wait after navigation for dynamic content
	Headful    bool          // show the browser window (debugging)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		Timeout:    30 * time.Second,
		SettleWait: 2 * time.Second,
	}
}

// Session is one logged-in browsing context.
type Session struct {
	cfg           Config
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// NewSession starts a browser and returns a session wrapping it.
func NewSession(cfg Config) (*Session, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !cfg.Headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	logger.Debug("browser session starting",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout,
		"headful", cfg.Headful)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &Session{
		cfg:           cfg,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

// run executes browser actions under the per-operation timeout. The caller's
// ctx provides cancellation; the browser context carries the session state.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeoutCtx, cancel := context.WithTimeout(s.browserCtx, s.cfg.Timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads a URL and waits for the body to render plus the settle wait.
func (s *Session) Navigate(ctx context.Context, url string) error {
	logger.Debug("browser navigating", "url", url)

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitVisible("body"),
	}
	if s.cfg.SettleWait > 0 {
		actions = append(actions, chromedp.Sleep(s.cfg.SettleWait))
	}

	if err := s.run(ctx, actions...); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Fill waits for the selector and types the value into it.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	err := s.run(ctx,
		chromedp.WaitVisible(selector),
		chromedp.SendKeys(selector, value),
	)
	if err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// HTML returns the rendered document markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return html, nil
}

// Location returns the current page URL.
func (s *Session) Location(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

// Close releases the browser and its allocator.
func (s *Session) Close() error {
	logger.Debug("browser session closing")
	if s.cancelBrowser != nil {
		s.cancelBrowser()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	return nil
}
