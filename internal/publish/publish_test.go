package publish

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pfrederiksen/concert-events/internal/event"
)

func testEvents() []*event.Event {
	return []*event.Event{
		event.New("09.10. Foo Fighters",
			time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC), "Foo Fighters", "Club Berlin"),
		event.New("12.11. The Band",
			time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC), "The Band", "Huxleys"),
	}
}

func TestJSONLPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	p := NewJSONL(path)

	if err := p.Publish(context.Background(), testEvents()); err != nil {
		t.Fatal(err)
	}
	// Appending a second batch must not clobber the first.
	if err := p.Publish(context.Background(), testEvents()[:1]); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var bands []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev event.Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line is not a JSON event: %v", err)
		}
		bands = append(bands, ev.Band)
	}
	if len(bands) != 3 {
		t.Fatalf("got %d lines, want 3", len(bands))
	}
	if bands[0] != "Foo Fighters" || bands[2] != "Foo Fighters" {
		t.Errorf("bands = %v", bands)
	}
}

func TestStdoutPublish(t *testing.T) {
	var buf bytes.Buffer
	p := NewStdout(&buf)

	if err := p.Publish(context.Background(), testEvents()); err != nil {
		t.Fatal(err)
	}

	var ev event.Event
	if err := json.Unmarshal(buf.Bytes()[:bytes.IndexByte(buf.Bytes(), '\n')], &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Band != "Foo Fighters" {
		t.Errorf("first published band = %q", ev.Band)
	}
}

func TestDryRunPublishesNothing(t *testing.T) {
	p := NewDryRun(zerolog.Nop())
	if err := p.Publish(context.Background(), testEvents()); err != nil {
		t.Errorf("dry run returned error: %v", err)
	}
}
