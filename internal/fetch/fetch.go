package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	UserAgent      = "concert-events/1.0 (github.com/pfrederiksen/concert-events)"
	DefaultTimeout = 30 * time.Second
)

// Fetcher produces the ordered plain-text lines of a listing page. The parser
// only ever sees these lines; all transport and HTML handling ends here.
type Fetcher interface {
	Lines(ctx context.Context) ([]string, error)
}

// HTTPFetcher fetches a page with a plain GET and extracts its text lines.
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTP creates an HTTPFetcher for the given URL.
func NewHTTP(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Lines fetches the page and returns its non-empty text lines in document
// order.
func (f *HTTPFetcher) Lines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return ExtractLines(doc), nil
}

// ExtractLines walks the document's text nodes and returns each non-empty
// trimmed line, one entry per node line, in document order. Script and style
// contents are skipped.
func ExtractLines(doc *goquery.Document) []string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, ln := range strings.Split(n.Data, "\n") {
				if s := strings.TrimSpace(ln); s != "" {
					lines = append(lines, s)
				}
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return lines
}
