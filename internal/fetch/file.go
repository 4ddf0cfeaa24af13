package fetch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FileFetcher reads lines from a local file instead of the network. An .html
// or .htm file goes through the same text extraction as a fetched page; any
// other file is treated as pre-extracted plain-text lines.
type FileFetcher struct {
	path string
}

// NewFile creates a FileFetcher for the given path.
func NewFile(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

func (f *FileFetcher) Lines(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	lower := strings.ToLower(f.path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("parsing HTML file: %w", err)
		}
		return ExtractLines(doc), nil
	}

	var lines []string
	for _, ln := range strings.Split(string(data), "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, nil
}
