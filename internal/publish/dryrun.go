package publish

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// DryRun logs what would be published without writing anywhere.
type DryRun struct {
	log zerolog.Logger
}

// NewDryRun creates a dry-run publisher.
func NewDryRun(log zerolog.Logger) *DryRun {
	return &DryRun{log: log}
}

func (p *DryRun) Publish(_ context.Context, events []*event.Event) error {
	for _, ev := range events {
		p.log.Info().
			Str("id", ev.ID).
			Str("band", ev.Band).
			Time("date", ev.Date).
			Str("status", string(ev.StatusKind)).
			Msg("dry run: would publish")
	}
	return nil
}
