package robot

import "github.com/roach88/nono/internal/event"

// resolve returns the sink for the current call. An explicit sink becomes
// the new default; without one the default is used. With neither, the
// call fails with a missing target error. A nil pointer held in the
// interface counts as no explicit sink.
func (r *Robot) resolve(explicit event.Sink) (event.Sink, bool) {
	if !event.IsNil(explicit) {
		r.target = explicit
		return explicit, true
	}
	if !event.IsNil(r.target) {
		return r.target, true
	}
	return nil, false
}

// targetFor resolves the sink for an emission of kind, recording a missing
// target error on failure.
func (r *Robot) targetFor(kind event.Kind, explicit event.Sink) (event.Sink, bool) {
	sink, ok := r.resolve(explicit)
	if !ok {
		r.fail(newMissingTargetError(kind))
	}
	return sink, ok
}
