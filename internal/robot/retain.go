package robot

import "github.com/roach88/nono/internal/event"

// slot holds the retained fields of one category.
type slot[T event.Record[T]] struct {
	value T
	ok    bool
}

// normalize applies defaults to raw and, when keep is set, merges it over
// the stored record and stores the result.
func (s *slot[T]) normalize(keep bool, raw T) T {
	fields := raw.WithDefaults()
	if !keep {
		return fields
	}
	if s.ok {
		fields = fields.Merge(s.value)
	}
	s.value, s.ok = fields, true
	return fields
}

// retention is the per-robot retention mode and stored field sets.
type retention struct {
	keep bool

	mouse    slot[event.MouseInit]
	wheel    slot[event.WheelInit]
	keyboard slot[event.KeyboardInit]
	ui       slot[event.UIInit]
	input    slot[event.InputInit]
	change   slot[event.EventInit]
	touch    slot[event.TouchInit]
}

func (r *retention) flush() {
	*r = retention{}
}
