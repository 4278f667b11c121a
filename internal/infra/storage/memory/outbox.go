package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "lynx/internal/app/outbox"
)

// Outbox buffers events until Flush, which logs them and moves them to the
// published history. It stands in for the Mongo outbox when no broker is configured.
type Outbox struct {
	Logger *slog.Logger

	mu        sync.Mutex
	pending   []appoutbox.EventRecord
	published []appoutbox.EventRecord
}

func NewOutbox(logger *slog.Logger) *Outbox {
	return &Outbox{Logger: logger}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	batch := o.pending
	o.pending = nil
	o.published = append(o.published, batch...)
	o.mu.Unlock()
	if o.Logger != nil {
		for _, rec := range batch {
			o.Logger.InfoContext(ctx, "event", "name", rec.Name, "id", rec.ID, "aggregate", rec.Aggregate)
		}
	}
	return nil
}

// Published returns every flushed record, oldest first.
func (o *Outbox) Published() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]appoutbox.EventRecord(nil), o.published...)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
