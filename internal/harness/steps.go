package harness

import (
	"slices"
	"time"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/robot"
)

// runStep performs one step on the robot. Failures are left on the robot
// for the caller to collect.
func (h *Harness) runStep(step Step) {
	r := h.robot
	if step.Target != "" {
		r.Select(step.Target)
	}

	switch step.Do {
	case ActionKeepData:
		r.KeepData()
		return
	case ActionFlushData:
		r.FlushData()
		return
	case ActionWrite:
		delay := h.cfg.writeDelay
		if ms, ok := step.DelayMS.Get(); ok {
			delay = time.Duration(ms) * time.Millisecond
		}
		h.repeat(step, func() { r.Write(step.Text, delay) })
		return
	case ActionPan:
		h.repeat(step, func() { r.PanGesture(h.gesture(step.Pan)) })
		return
	}

	kind := event.Kind(step.Do)
	switch kind {
	case event.KindClick, event.KindDblClick, event.KindAuxClick:
		opts := []robot.ClickOption{robot.Times(step.Count.Or(1))}
		if step.PressRelease {
			opts = append(opts, robot.WithPressRelease())
		}
		switch kind {
		case event.KindClick:
			r.Click(step.Mouse, opts...)
		case event.KindDblClick:
			r.DblClick(step.Mouse, opts...)
		default:
			r.AuxClick(step.Mouse, opts...)
		}
		return
	}

	h.repeat(step, func() { h.emit(kind, step) })
}

func (h *Harness) repeat(step Step, fn func()) {
	for range step.Count.Or(1) {
		fn()
		if h.robot.Err() != nil {
			return
		}
	}
}

func (h *Harness) emit(kind event.Kind, step Step) {
	r := h.robot
	switch kind {
	case event.KindMouseDown:
		r.MouseDown(step.Mouse)
	case event.KindMouseUp:
		r.MouseUp(step.Mouse)
	case event.KindMouseMove:
		r.MouseMove(step.Mouse)
	case event.KindMouseOver:
		r.MouseOver(step.Mouse)
	case event.KindMouseOut:
		r.MouseOut(step.Mouse)
	case event.KindMouseEnter:
		r.MouseEnter(step.Mouse)
	case event.KindMouseLeave:
		r.MouseLeave(step.Mouse)
	case event.KindWheel:
		r.Wheel(step.Wheel)
	case event.KindKeyDown:
		r.KeyDown(step.Keyboard)
	case event.KindKeyUp:
		r.KeyUp(step.Keyboard)
	case event.KindScroll:
		r.Scroll(step.UI)
	case event.KindInput:
		r.Input(step.Input)
	case event.KindChange:
		r.Change(step.Change)
	case event.KindTouchStart, event.KindTouchMove, event.KindTouchEnd:
		opts := []robot.TouchOption{robot.Points(step.Touches...)}
		if ts, ok := step.Timestamp.Get(); ok {
			opts = append(opts, robot.At(ts))
		}
		switch kind {
		case event.KindTouchStart:
			r.TouchStart(step.Touch, opts...)
		case event.KindTouchMove:
			r.TouchMove(step.Touch, opts...)
		default:
			r.TouchEnd(step.Touch, opts...)
		}
	}
}

func (h *Harness) gesture(p *Pan) robot.Gesture {
	return robot.Gesture{
		IDs:       slices.Clone(p.IDs),
		Distance:  p.Distance,
		Direction: robot.Direction(p.Direction),
		Starts:    slices.Clone(p.Starts),
		Deviation: p.Deviation,
		Steps:     p.Steps.Or(h.cfg.panSteps),
		Init:      p.Touch,
	}
}
