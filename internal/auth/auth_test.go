package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeDriver simulates the login page. Click on the submit button moves
// the location to the landing page unless stayOnLogin is set.
type fakeDriver struct {
	location    string
	stayOnLogin bool
	filled      map[string]string
	navErr      error
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	if d.navErr != nil {
		return d.navErr
	}
	d.location = url
	return nil
}

func (d *fakeDriver) Fill(_ context.Context, selector, value string) error {
	if d.filled == nil {
		d.filled = make(map[string]string)
	}
	d.filled[selector] = value
	return nil
}

func (d *fakeDriver) Click(_ context.Context, _ string) error {
	if !d.stayOnLogin {
		d.location = "https://play.golfshot.com/dashboard"
	}
	return nil
}

func (d *fakeDriver) HTML(_ context.Context) (string, error) { return "", nil }

func (d *fakeDriver) Location(_ context.Context) (string, error) {
	return d.location, nil
}

var testCreds = Credentials{Email: "golfer@example.com", Password: "secret"}

func testConfig() Config {
	return Config{
		LoginURL:     "https://play.golfshot.com/login",
		Timeout:      200 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	}
}

func TestLogin_Success(t *testing.T) {
	d := &fakeDriver{}

	if err := Login(context.Background(), d, testCreds, testConfig()); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if d.filled[emailSelector] != testCreds.Email {
		t.Errorf("email field = %q", d.filled[emailSelector])
	}
	if d.filled[passwordSelector] != testCreds.Password {
		t.Errorf("password field = %q", d.filled[passwordSelector])
	}
}

func TestLogin_TimeoutOnLoginPage(t *testing.T) {
	d := &fakeDriver{stayOnLogin: true}

	err := Login(context.Background(), d, testCreds, testConfig())
	if err == nil {
		t.Fatal("expected error when stuck on login page")
	}

	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Errorf("expected *auth.Error, got %T", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no email", Credentials{Password: "secret"}},
		{"no password", Credentials{Email: "golfer@example.com"}},
		{"empty", Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(context.Background(), &fakeDriver{}, tt.creds, testConfig())

			var authErr *Error
			if !errors.As(err, &authErr) {
				t.Errorf("expected *auth.Error, got %v", err)
			}
		})
	}
}

func TestLogin_PageLoadFailure(t *testing.T) {
	d := &fakeDriver{navErr: errors.New("connection refused")}

	err := Login(context.Background(), d, testCreds, testConfig())

	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.Error, got %T", err)
	}
	if !errors.Is(err, d.navErr) {
		t.Error("expected wrapped navigation error")
	}
}

func TestLogin_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &fakeDriver{stayOnLogin: true}
	err := Login(ctx, d, testCreds, testConfig())

	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Errorf("expected *auth.Error, got %T", err)
	}
}
