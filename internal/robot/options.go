package robot

import (
	"context"
	"log/slog"

	"github.com/roach88/nono/internal/event"
)

// SelectorFunc looks up a sink by selector. A miss returns false.
type SelectorFunc func(selector string) (event.Sink, bool)

// Option configures a Robot.
type Option func(*Robot)

// WithTarget sets the initial default sink. A nil sink sets nothing.
func WithTarget(sink event.Sink) Option {
	return func(r *Robot) {
		if !event.IsNil(sink) {
			r.target = sink
		}
	}
}

// WithSelector sets the initial default sink by selector. It is resolved
// once every option has been applied; a miss leaves the robot without a
// default sink.
func WithSelector(selector string) Option {
	return func(r *Robot) {
		r.initialSelector = selector
	}
}

// WithSelectorFunc sets the selector lookup used by Select and WithSelector.
func WithSelectorFunc(fn SelectorFunc) Option {
	return func(r *Robot) {
		r.selectors = fn
	}
}

// WithTimer sets the timer used for Write delays.
//
// Default: SystemTimer
func WithTimer(t Timer) Option {
	return func(r *Robot) {
		r.timer = t
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Robot) {
		r.logger = logger
	}
}

// WithContext sets the context passed to the dispatcher.
//
// Default: context.Background()
func WithContext(ctx context.Context) Option {
	return func(r *Robot) {
		r.ctx = ctx
	}
}

// WithNow sets the timestamp source for emitted events.
//
// Default: SinceStart()
func WithNow(now NowFunc) Option {
	return func(r *Robot) {
		r.now = now
	}
}

// WithClock sets the logical clock. Robots sharing a clock share one
// sequence space.
func WithClock(c *Clock) Option {
	return func(r *Robot) {
		r.clock = c
	}
}
