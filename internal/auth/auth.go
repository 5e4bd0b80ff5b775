// Package auth drives the Golfshot login flow.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jcleary/roundsheet/internal/browser"
	"github.com/jcleary/roundsheet/internal/logger"
)

// Credentials are held in memory for the run and never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Error is a fatal authentication failure. It aborts the run; there is no
// retry, since retrying a wrong password risks an account lockout.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Config controls the login flow.
type Config struct {
	LoginURL     string
	Timeout      time.Duration // bound on the post-submit navigation wait
	PollInterval time.Duration
}

// DefaultConfig returns the production login settings.
func DefaultConfig() Config {
	return Config{
		LoginURL:     "https://play.golfshot.com/login",
		Timeout:      30 * time.Second,
		PollInterval: 250 * time.Millisecond,
	}
}

// Form field selectors on the login page.
const (
	emailSelector    = `input[type="email"]`
	passwordSelector = `input[type="password"]`
	submitSelector   = `button[type="submit"]`
)

// Login authenticates the browsing session. Success is observed as the page
// navigating away from the login URL within the configured timeout.
func Login(ctx context.Context, d browser.Driver, creds Credentials, cfg Config) error {
	if creds.Email == "" || creds.Password == "" {
		return &Error{Reason: "email and password are required"}
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultConfig().LoginURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}

	logger.Info("logging in", "url", cfg.LoginURL)

	if err := d.Navigate(ctx, cfg.LoginURL); err != nil {
		return &Error{Reason: "login page failed to load", Err: err}
	}
	if err := d.Fill(ctx, emailSelector, creds.Email); err != nil {
		return &Error{Reason: "could not fill email field", Err: err}
	}
	if err := d.Fill(ctx, passwordSelector, creds.Password); err != nil {
		return &Error{Reason: "could not fill password field", Err: err}
	}
	if err := d.Click(ctx, submitSelector); err != nil {
		return &Error{Reason: "could not submit login form", Err: err}
	}

	if err := waitForLanding(ctx, d, cfg); err != nil {
		return err
	}

	logger.Info("login successful")
	return nil
}

// waitForLanding polls the page location until it leaves the login path.
func waitForLanding(ctx context.Context, d browser.Driver, cfg Config) error {
	deadline := time.Now().Add(cfg.Timeout)
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		loc, err := d.Location(ctx)
		if err != nil {
			return &Error{Reason: "could not read page location", Err: err}
		}
		if loc != "" && !strings.Contains(loc, "/login") {
			logger.Debug("post-login landing reached", "url", loc)
			return nil
		}
		if time.Now().After(deadline) {
			return &Error{Reason: "still on login page after timeout (wrong credentials?)"}
		}

		select {
		case <-ctx.Done():
			return &Error{Reason: "login interrupted", Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
