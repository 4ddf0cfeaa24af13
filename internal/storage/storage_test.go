package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/concert-events/internal/enrich"
	"github.com/pfrederiksen/concert-events/internal/event"
)

func testEvents() []*event.Event {
	oct9 := time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC)
	nov12 := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	return []*event.Event{
		event.New("09.10. Foo Fighters @ Club Berlin 15€", oct9, "Foo Fighters", "Club Berlin"),
		event.New("12.11. The Band", nov12, "The Band", "Club Berlin"),
	}
}

func TestSaveRunDefaultPath(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.SaveRun(testEvents(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(path), "concert_events_") {
		t.Errorf("dump filename = %q, want concert_events_ prefix", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded []*event.Event
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Errorf("dump holds %d events, want 2", len(loaded))
	}
}

func TestSaveRunExplicitFile(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(t.TempDir(), "out", "run.json")
	path, err := store.SaveRun(testEvents(), target)
	if err != nil {
		t.Fatal(err)
	}
	if path != target {
		t.Errorf("path = %q, want %q", path, target)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("dump file missing: %v", err)
	}
}

func TestSaveRunDirectory(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := store.SaveRun(testEvents(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("dump written to %q, want inside %q", path, dir)
	}
}

func TestSnapshotDiff(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events := testEvents()

	previous, err := store.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if got := Diff(previous, events); len(got) != 2 {
		t.Errorf("first run: %d new events, want 2", len(got))
	}

	if err := store.SaveSnapshot(events); err != nil {
		t.Fatal(err)
	}

	previous, err = store.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if got := Diff(previous, events); len(got) != 0 {
		t.Errorf("second run: %d new events, want 0", len(got))
	}

	// A new listing shows up only for the event that was not in the snapshot.
	extra := event.New("01.12. Other Band",
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), "Other Band", "Huxleys")
	got := Diff(previous, append(events, extra))
	if len(got) != 1 || got[0].Band != "Other Band" {
		t.Errorf("diff = %+v, want only Other Band", got)
	}
}

func TestEnrichCacheRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cache := enrich.NewCache(0)
	cache.Set("Foo Fighters", enrich.Info{
		Members: []string{"Dave Grohl"},
		Genres:  []string{"rock"},
	})
	if err := store.SaveEnrichCache(cache); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadEnrichCache(0)
	if err != nil {
		t.Fatal(err)
	}
	info := loaded.Get("foo fighters")
	if info == nil {
		t.Fatal("cached entry lost in round trip")
	}
	if len(info.Members) != 1 || info.Members[0] != "Dave Grohl" {
		t.Errorf("members = %v", info.Members)
	}
}

func TestLoadEnrichCacheMissingFile(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cache, err := store.LoadEnrichCache(0)
	if err != nil {
		t.Fatal(err)
	}
	if cache.Size() != 0 {
		t.Errorf("cache size = %d, want 0", cache.Size())
	}
}
