package rounds

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jcleary/roundsheet/internal/browser"
	"github.com/jcleary/roundsheet/internal/logger"
)

// Listing page selectors. Round rows carry their detail URL in data-href;
// the pagination control is an anchor that gets a disabled class (or a
// void href) on the last page.
const (
	roundRowSelector  = `tr[data-href*="/rounds/"], a[href*="/rounds/"]`
	nextPageSelector  = `a.btn-next`
	roundPathSegment  = "/rounds/"
	disabledClassName = "disabled"
	voidHref          = "javascript:void(0)"
)

// LocatorConfig bounds the pagination crawl.
type LocatorConfig struct {
	// MaxPages is a hard cap on listing pages visited. The loop also breaks
	// on revisiting a listing URL, so a next control that never disables
	// cannot spin forever. 0 means the default.
	MaxPages int
}

// DefaultMaxPages is generous: at 20 rounds per page this covers two
// thousand rounds.
const DefaultMaxPages = 100

// Locator paginates the rounds listing and accumulates round detail URLs
// in discovery order.
type Locator struct {
	driver   browser.Driver
	maxPages int
}

// NewLocator creates a Locator using the authenticated session.
func NewLocator(d browser.Driver, cfg LocatorConfig) *Locator {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	return &Locator{driver: d, maxPages: cfg.MaxPages}
}

// Locate walks the listing pages starting at listingURL and returns every
// round reference found, deduplicated, page 1 top-to-bottom then page 2
// and so on. A page that fails to load ends the walk early with whatever
// was accumulated; only caller cancellation is returned as an error.
func (l *Locator) Locate(ctx context.Context, listingURL string) ([]Reference, error) {
	var refs []Reference
	seen := make(map[string]bool)
	visitedPages := make(map[string]bool)

	pageURL := listingURL
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return refs, err
		}
		if page > l.maxPages {
			logger.Warn("stopping pagination at page limit", "max_pages", l.maxPages)
			break
		}
		if visitedPages[pageURL] {
			logger.Warn("pagination loop detected, stopping", "url", pageURL)
			break
		}
		visitedPages[pageURL] = true

		if err := l.driver.Navigate(ctx, pageURL); err != nil {
			logger.Warn("listing page failed to load, keeping partial results",
				"url", pageURL, "error", err)
			break
		}
		html, err := l.driver.HTML(ctx)
		if err != nil {
			logger.Warn("listing page unreadable, keeping partial results",
				"url", pageURL, "error", err)
			break
		}

		links := extractRoundLinks(html, pageURL)
		added := 0
		for _, u := range links {
			if seen[u] {
				continue
			}
			seen[u] = true
			refs = append(refs, Reference{URL: u})
			added++
		}
		logger.Info("listing page scanned", "page", page, "rounds", added)

		next, ok := findNextPage(html, pageURL)
		if !ok {
			logger.Debug("no enabled next control, pagination complete", "pages", page)
			break
		}
		pageURL = next
	}

	logger.Info("round discovery complete", "rounds", len(refs))
	return refs, nil
}

// extractRoundLinks returns the round detail URLs on a listing page in
// document order, resolved against the page URL.
func extractRoundLinks(html, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find(roundRowSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("data-href")
		if !ok {
			href, ok = s.Attr("href")
		}
		if !ok || href == "" || !strings.Contains(href, roundPathSegment) {
			return
		}
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		if !linkURL.IsAbs() {
			linkURL = base.ResolveReference(linkURL)
		}
		linkURL.Fragment = ""

		links = append(links, linkURL.String())
	})

	return links
}

// findNextPage returns the absolute URL of the next listing page, or
// ok=false when the next control is absent or disabled.
func findNextPage(html, baseURL string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}

	var nextURL string
	doc.Find(nextPageSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass(disabledClassName) {
			return true
		}
		href, ok := s.Attr("href")
		if !ok || href == "" || href == voidHref {
			return true
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return true
		}
		if !linkURL.IsAbs() {
			linkURL = base.ResolveReference(linkURL)
		}

		nextURL = linkURL.String()
		return false
	})

	return nextURL, nextURL != ""
}
