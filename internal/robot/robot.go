package robot

import (
	"context"
	"log/slog"

	"github.com/roach88/nono/internal/event"
)

// Robot emits synthetic input events to sinks through a Dispatcher.
type Robot struct {
	dispatcher event.Dispatcher
	selectors  SelectorFunc
	timer      Timer
	logger     *slog.Logger
	ctx        context.Context
	now        NowFunc
	clock      *Clock

	target          event.Sink
	initialSelector string

	retained retention
	touches  tracker

	pending []func() bool

	err error
}

// New creates a Robot that delivers events through d.
func New(d event.Dispatcher, opts ...Option) *Robot {
	r := &Robot{
		dispatcher: d,
		timer:      SystemTimer{},
		logger:     slog.Default(),
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.now == nil {
		r.now = SinceStart()
	}
	if r.clock == nil {
		r.clock = NewClock()
	}
	if r.initialSelector != "" {
		if sink, ok := r.lookup(r.initialSelector); ok {
			r.target = sink
		}
	}
	return r
}

// Err returns the first error recorded since construction or the last
// ResetErr.
func (r *Robot) Err() error {
	return r.err
}

// ResetErr returns the recorded error and clears it, re-enabling the robot.
func (r *Robot) ResetErr() error {
	err := r.err
	r.err = nil
	return err
}

// Target returns the current default sink, or nil.
func (r *Robot) Target() event.Sink {
	return r.target
}

// Retaining reports whether retention mode is on.
func (r *Robot) Retaining() bool {
	return r.retained.keep
}

// Clock returns the robot's logical clock.
func (r *Robot) Clock() *Clock {
	return r.clock
}

// On makes sink the default target of the following calls.
func (r *Robot) On(sink event.Sink) *Robot {
	if r.err != nil {
		return r
	}
	r.resolve(sink)
	return r
}

// Select looks up selector and, on a hit, makes the sink the default
// target. A miss leaves the default untouched.
func (r *Robot) Select(selector string) *Robot {
	if r.err != nil {
		return r
	}
	if sink, ok := r.lookup(selector); ok {
		r.resolve(sink)
	} else {
		r.logger.Debug("selector matched nothing", "selector", selector)
	}
	return r
}

// KeepData turns retention mode on without clearing stored fields.
func (r *Robot) KeepData() *Robot {
	if r.err != nil {
		return r
	}
	r.retained.keep = true
	r.logger.Debug("retention on")
	return r
}

// FlushData turns retention mode off and forgets every stored field set.
func (r *Robot) FlushData() *Robot {
	if r.err != nil {
		return r
	}
	r.retained.flush()
	r.logger.Debug("retention off, stored fields cleared")
	return r
}

// Do runs fn inline and returns the robot. It runs even when an error is
// recorded and changes no robot state.
func (r *Robot) Do(fn func()) *Robot {
	fn()
	return r
}

// CancelPending stops every Write delay timer that has not fired yet and
// reports how many were stopped.
func (r *Robot) CancelPending() int {
	n := 0
	for _, stop := range r.pending {
		if stop() {
			n++
		}
	}
	r.pending = nil
	return n
}

func (r *Robot) lookup(selector string) (event.Sink, bool) {
	if r.selectors == nil {
		return nil, false
	}
	return r.selectors(selector)
}

// fail records err unless an earlier error is pending.
func (r *Robot) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// build stamps a new event for target. ts overrides the timestamp when set.
func (r *Robot) build(kind event.Kind, target event.Sink, ts event.Opt[float64]) *event.Event {
	return &event.Event{
		Kind:      kind,
		Seq:       r.clock.Next(),
		TimeStamp: ts.Or(r.now()),
		Target:    target,
	}
}

// dispatch delivers ev and records a failure.
func (r *Robot) dispatch(ev *event.Event) bool {
	r.logger.Debug("dispatch",
		"kind", ev.Kind,
		"target", event.LabelOf(ev.Target),
		"seq", ev.Seq,
	)
	if err := r.dispatcher.Dispatch(r.ctx, ev.Target, ev); err != nil {
		r.fail(newDispatchError(ev, err))
		return false
	}
	return true
}
