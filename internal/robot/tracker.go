package robot

import "github.com/roach88/nono/internal/event"

// sinkSlot holds the ongoing touches of one sink, in insertion order.
type sinkSlot struct {
	sink   event.Sink
	order  []int
	points map[int]event.Touch
}

// tracker is the ongoing-touch table: an arena of sink slots addressed by
// integer handle, each slot mapping identifier to touch.
//
// Sinks are looked up by identity. A slot is created by the first event
// that carries changed touches for its sink. Slots are never freed, so
// handles are stable and sink groups keep first-touch order.
type tracker struct {
	slots []*sinkSlot
}

// lookup returns the slot index for sink without creating one.
func (t *tracker) lookup(sink event.Sink) (int, bool) {
	for i, s := range t.slots {
		if s.sink == sink {
			return i, true
		}
	}
	return -1, false
}

// handle returns the slot index for sink, creating the slot when needed.
func (t *tracker) handle(sink event.Sink) int {
	if h, ok := t.lookup(sink); ok {
		return h
	}
	t.slots = append(t.slots, &sinkSlot{sink: sink, points: make(map[int]event.Touch)})
	return len(t.slots) - 1
}

// upsert inserts or replaces touches by identifier. A replaced touch keeps
// its position.
func (t *tracker) upsert(h int, touches []event.Touch) {
	s := t.slots[h]
	for _, tc := range touches {
		if _, ok := s.points[tc.Identifier]; !ok {
			s.order = append(s.order, tc.Identifier)
		}
		s.points[tc.Identifier] = tc
	}
}

// remove forgets the given identifiers on one sink.
func (t *tracker) remove(h int, ids []int) {
	s := t.slots[h]
	for _, id := range ids {
		if _, ok := s.points[id]; !ok {
			continue
		}
		delete(s.points, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// targetTouches returns the ongoing touches of one sink. A negative handle
// is a sink that was never touched.
func (t *tracker) targetTouches(h int) []event.Touch {
	if h < 0 {
		return []event.Touch{}
	}
	s := t.slots[h]
	out := make([]event.Touch, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.points[id])
	}
	return out
}

// all returns every ongoing touch on every sink.
func (t *tracker) all() []event.Touch {
	var out []event.Touch
	for h := range t.slots {
		out = append(out, t.targetTouches(h)...)
	}
	if out == nil {
		out = []event.Touch{}
	}
	return out
}

// ongoing reports the number of ongoing touches across every sink.
func (t *tracker) ongoing() int {
	n := 0
	for _, s := range t.slots {
		n += len(s.order)
	}
	return n
}
