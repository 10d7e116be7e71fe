package robot

import "github.com/roach88/nono/internal/event"

// emit runs the common pipeline for non-touch categories: resolve the
// target, normalize raw through its retention slot, build, dispatch.
func emit[T event.Record[T]](r *Robot, kind event.Kind, s *slot[T], raw T, attach func(*event.Event, T)) bool {
	if r.err != nil {
		return false
	}
	target, ok := r.targetFor(kind, nil)
	if !ok {
		return false
	}
	fields := s.normalize(r.retained.keep, raw)
	ev := r.build(kind, target, event.Opt[float64]{})
	attach(ev, fields)
	return r.dispatch(ev)
}

func (r *Robot) mouse(kind event.Kind, init event.MouseInit) bool {
	return emit(r, kind, &r.retained.mouse, init, func(ev *event.Event, f event.MouseInit) {
		ev.Mouse = &f
	})
}

func (r *Robot) keyboard(kind event.Kind, init event.KeyboardInit) bool {
	return emit(r, kind, &r.retained.keyboard, init, func(ev *event.Event, f event.KeyboardInit) {
		ev.Keyboard = &f
	})
}
