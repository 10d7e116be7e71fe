package robot

import (
	"slices"

	"github.com/roach88/nono/internal/event"
)

type touchOptions struct {
	points []event.TouchPointInit
	at     event.Opt[float64]
}

// TouchOption configures TouchStart, TouchMove and TouchEnd.
type TouchOption func(*touchOptions)

// Points appends touch points to the init's changed touches.
func Points(pts ...event.TouchPointInit) TouchOption {
	return func(o *touchOptions) {
		o.points = append(o.points, pts...)
	}
}

// At overrides the event timestamp, in milliseconds.
func At(ms float64) TouchOption {
	return func(o *touchOptions) {
		o.at = event.Some(ms)
	}
}

// TouchStart emits a touchstart. Its changed touches become ongoing.
func (r *Robot) TouchStart(init event.TouchInit, opts ...TouchOption) *Robot {
	r.touch(event.KindTouchStart, nil, init, opts...)
	return r
}

// TouchMove emits a touchmove, updating ongoing touches in place.
func (r *Robot) TouchMove(init event.TouchInit, opts ...TouchOption) *Robot {
	r.touch(event.KindTouchMove, nil, init, opts...)
	return r
}

// TouchEnd emits a touchend. Its changed touches stop being ongoing once
// the event has been dispatched.
func (r *Robot) TouchEnd(init event.TouchInit, opts ...TouchOption) *Robot {
	r.touch(event.KindTouchEnd, nil, init, opts...)
	return r
}

// OngoingTouches reports how many touches are currently active across
// every sink.
func (r *Robot) OngoingTouches() int {
	return r.touches.ongoing()
}

// touch runs the touch pipeline: resolve, normalize, upsert the changed
// touches, read targetTouches and touches, dispatch, then drop ended
// identifiers.
func (r *Robot) touch(kind event.Kind, explicit event.Sink, init event.TouchInit, opts ...TouchOption) bool {
	if r.err != nil {
		return false
	}
	var o touchOptions
	for _, opt := range opts {
		opt(&o)
	}

	target, ok := r.targetFor(kind, explicit)
	if !ok {
		return false
	}
	if len(o.points) > 0 {
		init.ChangedTouches = append(slices.Clone(init.ChangedTouches), o.points...)
	}
	fields := r.retained.touch.normalize(r.retained.keep, init)

	changed := make([]event.Touch, len(fields.ChangedTouches))
	for i, p := range fields.ChangedTouches {
		changed[i] = p.Resolve(target)
	}

	h, _ := r.touches.lookup(target)
	if len(changed) > 0 {
		h = r.touches.handle(target)
		r.touches.upsert(h, changed)
	}

	ev := r.build(kind, target, o.at)
	ev.Touch = &event.TouchData{
		ModifierInit:   fields.ModifierInit,
		ChangedTouches: changed,
		TargetTouches:  r.touches.targetTouches(h),
		Touches:        r.touches.all(),
	}
	if !r.dispatch(ev) {
		return false
	}

	if kind == event.KindTouchEnd && h >= 0 {
		ids := make([]int, len(changed))
		for i, t := range changed {
			ids[i] = t.Identifier
		}
		r.touches.remove(h, ids)
	}
	return true
}
