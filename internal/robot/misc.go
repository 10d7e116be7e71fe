package robot

import "github.com/roach88/nono/internal/event"

// Wheel emits a wheel event.
func (r *Robot) Wheel(init event.WheelInit) *Robot {
	emit(r, event.KindWheel, &r.retained.wheel, init, func(ev *event.Event, f event.WheelInit) {
		ev.Wheel = &f
	})
	return r
}

// Scroll emits a scroll event.
func (r *Robot) Scroll(init event.UIInit) *Robot {
	emit(r, event.KindScroll, &r.retained.ui, init, func(ev *event.Event, f event.UIInit) {
		ev.UI = &f
	})
	return r
}

// Input emits an input event.
func (r *Robot) Input(init event.InputInit) *Robot {
	emit(r, event.KindInput, &r.retained.input, init, func(ev *event.Event, f event.InputInit) {
		ev.Input = &f
	})
	return r
}

// Change emits a change event.
func (r *Robot) Change(init event.EventInit) *Robot {
	emit(r, event.KindChange, &r.retained.change, init, func(ev *event.Event, f event.EventInit) {
		ev.Change = &f
	})
	return r
}
