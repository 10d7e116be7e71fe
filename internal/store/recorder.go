package store

import (
	"context"
	"fmt"

	"github.com/roach88/nono/internal/event"
)

// Recorder is a Dispatcher that appends every event to a session's log
// and then forwards it to the next dispatcher.
//
// Events are written before delivery, so an event whose listeners fail
// still appears in the trace.
type Recorder struct {
	store   *Store
	session string
	next    event.Dispatcher
}

// NewRecorder wraps next. A nil next only records.
func NewRecorder(s *Store, sessionID string, next event.Dispatcher) *Recorder {
	return &Recorder{store: s, session: sessionID, next: next}
}

// Session returns the session id events are recorded under.
func (r *Recorder) Session() string {
	return r.session
}

// Dispatch implements event.Dispatcher.
func (r *Recorder) Dispatch(ctx context.Context, target event.Sink, ev *event.Event) error {
	if _, err := r.store.WriteEvent(ctx, r.session, ev); err != nil {
		return fmt.Errorf("record %s: %w", ev.Kind, err)
	}
	if r.next == nil {
		return nil
	}
	return r.next.Dispatch(ctx, target, ev)
}
