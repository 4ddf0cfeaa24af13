package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/concert-events/internal/event"
)

func testResult() *Result {
	price := 15.0
	ev1 := event.New("09.10. Foo Fighters @ Club Berlin 15€",
		time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC), "Foo Fighters", "Club Berlin")
	ev1.PriceEUR = &price

	ev2 := event.New("12.11. The Band Verlegt nach Huxleys",
		time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC), "The Band", "Festsaal")
	ev2.StatusKind = event.StatusRescheduled
	ev2.NewLocation = "Huxleys"
	ev2.StatusRaw = "Verlegt nach Huxleys"

	return &Result{
		CheckedAt: time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC),
		Source:    "https://example.com/vorverkauf",
		Events:    []*event.Event{ev1, ev2},
		NewEvents: []*event.Event{ev2},
	}
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatText, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"2025-10-09  Foo Fighters @ Club Berlin  15.00€",
		"NEW 2025-11-12  The Band @ Festsaal  [verlegt -> Huxleys]",
		"Total: 2 events (1 new)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutputTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &Result{}, FormatText, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, testResult(), FormatJSON, false); err != nil {
		t.Fatal(err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Events) != 2 || len(decoded.NewEvents) != 1 {
		t.Errorf("events = %d, new = %d", len(decoded.Events), len(decoded.NewEvents))
	}
	if decoded.Events[1].NewLocation != "Huxleys" {
		t.Errorf("new_location = %q", decoded.Events[1].NewLocation)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, testResult(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}
