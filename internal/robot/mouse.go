package robot

import "github.com/roach88/nono/internal/event"

type clickOptions struct {
	times        int
	pressRelease bool
}

// ClickOption configures Click, DblClick and AuxClick.
type ClickOption func(*clickOptions)

// Times repeats the click n times. Default 1.
func Times(n int) ClickOption {
	return func(o *clickOptions) {
		o.times = n
	}
}

// WithPressRelease emits a mousedown/mouseup pair instead of a click event.
func WithPressRelease() ClickOption {
	return func(o *clickOptions) {
		o.pressRelease = true
	}
}

func newClickOptions(opts []ClickOption) clickOptions {
	o := clickOptions{times: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Click emits a click, or a mousedown/mouseup pair with WithPressRelease,
// once per Times.
func (r *Robot) Click(init event.MouseInit, opts ...ClickOption) *Robot {
	o := newClickOptions(opts)
	for range o.times {
		if o.pressRelease {
			r.mouse(event.KindMouseDown, init)
			r.mouse(event.KindMouseUp, init)
		} else {
			r.mouse(event.KindClick, init)
		}
	}
	return r
}

// DblClick emits a dblclick. With WithPressRelease it emits two
// mousedown/mouseup pairs instead. Times is ignored.
func (r *Robot) DblClick(init event.MouseInit, opts ...ClickOption) *Robot {
	o := newClickOptions(opts)
	if o.pressRelease {
		return r.Click(init, Times(2), WithPressRelease())
	}
	r.mouse(event.KindDblClick, init)
	return r
}

// AuxClick emits an auxclick once per Times.
func (r *Robot) AuxClick(init event.MouseInit, opts ...ClickOption) *Robot {
	o := newClickOptions(opts)
	for range o.times {
		r.mouse(event.KindAuxClick, init)
	}
	return r
}

// MouseDown emits a mousedown.
func (r *Robot) MouseDown(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseDown, init)
	return r
}

// MouseUp emits a mouseup.
func (r *Robot) MouseUp(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseUp, init)
	return r
}

// MouseMove emits a mousemove.
func (r *Robot) MouseMove(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseMove, init)
	return r
}

// MouseOver emits a mouseover.
func (r *Robot) MouseOver(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseOver, init)
	return r
}

// MouseOut emits a mouseout.
func (r *Robot) MouseOut(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseOut, init)
	return r
}

// MouseEnter emits a mouseenter.
func (r *Robot) MouseEnter(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseEnter, init)
	return r
}

// MouseLeave emits a mouseleave.
func (r *Robot) MouseLeave(init event.MouseInit) *Robot {
	r.mouse(event.KindMouseLeave, init)
	return r
}
