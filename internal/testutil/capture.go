package testutil

import (
	"context"

	"github.com/roach88/nono/internal/event"
)

// Sink is a named sink for tests.
type Sink struct {
	Name string
}

// NewSink creates a sink labelled name.
func NewSink(name string) *Sink {
	return &Sink{Name: name}
}

// Label implements event.Sink.
func (s *Sink) Label() string {
	return s.Name
}

// Capture is a dispatcher that records every event it receives.
//
// Set Err to make every following Dispatch fail.
type Capture struct {
	Events []*event.Event
	Err    error
}

// Dispatch implements event.Dispatcher.
func (c *Capture) Dispatch(_ context.Context, _ event.Sink, ev *event.Event) error {
	if c.Err != nil {
		return c.Err
	}
	c.Events = append(c.Events, ev)
	return nil
}

// Kinds returns the kinds of the captured events, in order.
func (c *Capture) Kinds() []event.Kind {
	out := make([]event.Kind, len(c.Events))
	for i, ev := range c.Events {
		out[i] = ev.Kind
	}
	return out
}

// OfKind returns the captured events of kind k, in order.
func (c *Capture) OfKind(k event.Kind) []*event.Event {
	var out []*event.Event
	for _, ev := range c.Events {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}

// Last returns the most recent event, or nil.
func (c *Capture) Last() *event.Event {
	if len(c.Events) == 0 {
		return nil
	}
	return c.Events[len(c.Events)-1]
}

// Reset forgets every captured event.
func (c *Capture) Reset() {
	c.Events = nil
}
