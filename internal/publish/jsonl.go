package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// JSONL appends one JSON document per event to a file, the same shape a bus
// producer would put on the wire.
type JSONL struct {
	path string
}

// NewJSONL creates a JSONL publisher writing to path.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

func (p *JSONL) Publish(_ context.Context, events []*event.Event) error {
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening publish file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding event %s: %w", ev.ID, err)
		}
	}
	return nil
}
