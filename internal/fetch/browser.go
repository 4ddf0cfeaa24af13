package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders a page in headless Chromium before extracting its
// text lines. Needed for listings that only materialize their content from
// script.
type BrowserFetcher struct {
	url     string
	timeout time.Duration
}

// NewBrowser creates a BrowserFetcher for the given URL.
func NewBrowser(url string, timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserFetcher{url: url, timeout: timeout}
}

// Lines navigates to the page, waits for the body to be ready, and extracts
// the rendered document's text lines.
func (f *BrowserFetcher) Lines(ctx context.Context) ([]string, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, f.timeout)
	defer timeoutCancel()

	var rendered string
	tasks := chromedp.Tasks{
		chromedp.Navigate(f.url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &rendered, chromedp.ByQuery),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered HTML: %w", err)
	}
	return ExtractLines(doc), nil
}
