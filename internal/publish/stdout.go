package publish

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// Stdout streams one JSON document per event to a writer, for piping into
// another process.
type Stdout struct {
	w io.Writer
}

// NewStdout creates a publisher writing to w.
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{w: w}
}

func (p *Stdout) Publish(_ context.Context, events []*event.Event) error {
	enc := json.NewEncoder(p.w)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	return nil
}
