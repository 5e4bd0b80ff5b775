package rounds

import (
	"context"
	"errors"
)

// fakeDriver serves canned HTML per URL, standing in for the browser
// session.
type fakeDriver struct {
	pages     map[string]string // URL -> rendered HTML
	failNav   map[string]bool   // URLs whose navigation fails
	navigated []string
	location  string
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	if d.failNav[url] {
		return errors.New("navigation failed")
	}
	d.navigated = append(d.navigated, url)
	d.location = url
	return nil
}

func (d *fakeDriver) Fill(_ context.Context, _, _ string) error { return nil }

func (d *fakeDriver) Click(_ context.Context, _ string) error { return nil }

func (d *fakeDriver) HTML(_ context.Context) (string, error) {
	html, ok := d.pages[d.location]
	if !ok {
		return "", errors.New("no page loaded")
	}
	return html, nil
}

func (d *fakeDriver) Location(_ context.Context) (string, error) {
	return d.location, nil
}
