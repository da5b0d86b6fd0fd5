package audit

import "context"

// Worker drains queued audit events into the store. On shutdown it flushes
// whatever is still buffered before returning, so accepted events are not
// lost to the inbox.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return w.flush(ctx)
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}

// flush persists events already buffered at shutdown. Appends run on a
// detached context; the parent is cancelled by the time flush runs.
func (w *Worker) flush(ctx context.Context) error {
	detached := context.WithoutCancel(ctx)
	for {
		select {
		case event := <-w.inbox:
			if err := w.store.Append(detached, event); err != nil {
				return err
			}
		default:
			return ctx.Err()
		}
	}
}
