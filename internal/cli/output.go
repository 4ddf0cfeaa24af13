package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Result contains one run's data to be output
type Result struct {
	CheckedAt time.Time      `json:"checked_at"`
	Source    string         `json:"source"`
	Events    []*event.Event `json:"events"`
	NewEvents []*event.Event `json:"new_events"`
	DumpPath  string         `json:"dump_path"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *Result, verbose bool) error {
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	newIDs := make(map[string]bool, len(result.NewEvents))
	for _, ev := range result.NewEvents {
		newIDs[ev.ID] = true
	}

	for _, ev := range result.Events {
		prefix := "    "
		if newIDs[ev.ID] {
			prefix = "NEW "
		}
		fmt.Fprintf(w, "%s%s", prefix, formatEvent(ev))
		if verbose {
			fmt.Fprintf(w, "      ID: %s\n", ev.ID)
			if ev.Section != "" {
				fmt.Fprintf(w, "      Section: %s\n", ev.Section)
			}
			if ev.StatusRaw != "" {
				fmt.Fprintf(w, "      Status: %s\n", ev.StatusRaw)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events (%d new)\n", len(result.Events), len(result.NewEvents))
	return nil
}

func formatEvent(ev *event.Event) string {
	s := fmt.Sprintf("%s  %s", ev.Date.Format("2006-01-02"), ev.Band)
	if ev.Location != "" {
		s += " @ " + ev.Location
	}
	if ev.PriceEUR != nil {
		s += fmt.Sprintf("  %.2f€", *ev.PriceEUR)
	}
	if ev.StatusKind != event.StatusAvailable {
		s += fmt.Sprintf("  [%s", ev.StatusKind)
		if ev.NewLocation != "" {
			s += " -> " + ev.NewLocation
		}
		s += "]"
	}
	return s + "\n"
}
