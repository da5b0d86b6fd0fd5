package audit

import (
	"context"
	"time"
)

// Publisher captures structured audit events. It either appends straight to
// a store or hands events to an inbox drained by a Worker; both paths stamp
// missing timestamps.
type Publisher struct {
	store Store
	inbox chan<- Event
}

// NewPublisher appends events synchronously to the store.
func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// NewQueuedPublisher hands events to the inbox for a Worker to persist,
// keeping audit writes off the request path.
func NewQueuedPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, event)
}
