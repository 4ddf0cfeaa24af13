package publish

import (
	"context"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// Publisher hands a run's records to a downstream transport. The message bus
// itself lives outside this repository; implementations here realize the
// boundary for local operation.
type Publisher interface {
	Publish(ctx context.Context, events []*event.Event) error
}
