package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const pageHTML = `<html><head>
<title>Vorverkauf</title>
<script>var tracking = "ignore me";</script>
<style>.hidden { display: none; }</style>
</head><body>
<h2>Club Berlin:</h2>
<p>09.10. Foo Fighters 15&euro;
12.11. The Band Ausverkauft!</p>
</body></html>`

func TestExtractLines(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		t.Fatal(err)
	}

	got := ExtractLines(doc)
	want := []string{
		"Vorverkauf",
		"Club Berlin:",
		"09.10. Foo Fighters 15€",
		"12.11. The Band Ausverkauft!",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractLines() = %q, want %q", got, want)
	}
}

func TestFileFetcherPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.txt")
	content := "Club Berlin:\n09.10. Foo Fighters 15€\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := NewFile(path).Lines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Club Berlin:", "09.10. Foo Fighters 15€"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %q, want %q", lines, want)
	}
}

func TestFileFetcherHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.html")
	if err := os.WriteFile(path, []byte(pageHTML), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := NewFile(path).Lines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 || lines[1] != "Club Berlin:" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "concert-events/") {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte(pageHTML))
	}))
	defer srv.Close()

	lines, err := NewHTTP(srv.URL, 5*time.Second).Lines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 || lines[2] != "09.10. Foo Fighters 15€" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewHTTP(srv.URL, 5*time.Second).Lines(context.Background()); err == nil {
		t.Error("expected error for 404 response")
	}
}
