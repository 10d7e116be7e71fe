package robot

import (
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/nono/internal/event"
)

// KeyDown emits a keydown.
func (r *Robot) KeyDown(init event.KeyboardInit) *Robot {
	r.keyboard(event.KindKeyDown, init)
	return r
}

// KeyUp emits a keyup.
func (r *Robot) KeyUp(init event.KeyboardInit) *Robot {
	r.keyboard(event.KindKeyUp, init)
	return r
}

// Write emits a keydown and a keyup per character of text, with Code set
// to the character. Text is NFC normalized first, so a base letter and its
// combining accent produce one pair.
//
// Write does not insert text: listeners interpret the key events. A
// positive delay schedules an inert timer after each character; emission
// never waits for it. CancelPending stops the timers still outstanding.
func (r *Robot) Write(text string, delay time.Duration) *Robot {
	for _, ch := range norm.NFC.String(text) {
		code := event.Some(string(ch))
		r.keyboard(event.KindKeyDown, event.KeyboardInit{Code: code})
		r.keyboard(event.KindKeyUp, event.KeyboardInit{Code: code})
		if r.err != nil {
			break
		}
		if delay > 0 {
			r.pending = append(r.pending, r.timer.AfterFunc(delay, func() {}))
		}
	}
	return r
}
