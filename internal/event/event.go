package event

// TouchData is the payload of touch events.
type TouchData struct {
	ModifierInit
	ChangedTouches []Touch
	TargetTouches  []Touch
	Touches        []Touch
}

// Event is a built event, ready for dispatch.
//
// Exactly one payload pointer is non-nil, chosen by Kind.Category().
type Event struct {
	Kind      Kind
	Seq       int64
	TimeStamp float64
	Target    Sink

	Mouse    *MouseInit
	Wheel    *WheelInit
	Keyboard *KeyboardInit
	UI       *UIInit
	Input    *InputInit
	Change   *EventInit
	Touch    *TouchData
}

// Category returns the category of the event kind.
func (e *Event) Category() Category {
	return e.Kind.Category()
}

// Base returns the EventInit part of the payload.
func (e *Event) Base() EventInit {
	switch {
	case e.Mouse != nil:
		return e.Mouse.EventInit
	case e.Wheel != nil:
		return e.Wheel.EventInit
	case e.Keyboard != nil:
		return e.Keyboard.EventInit
	case e.UI != nil:
		return e.UI.EventInit
	case e.Input != nil:
		return e.Input.EventInit
	case e.Change != nil:
		return *e.Change
	case e.Touch != nil:
		return e.Touch.EventInit
	}
	return EventInit{}
}

// Bubbles reports whether the event propagates to ancestors of its target.
func (e *Event) Bubbles() bool {
	return e.Base().Bubbles.Value()
}

// Fields flattens the payload to DOM-named keys. Absent fields report
// their DOM default.
func (e *Event) Fields() map[string]any {
	m := make(map[string]any)
	switch {
	case e.Mouse != nil:
		e.Mouse.fields(m)
	case e.Wheel != nil:
		e.Wheel.fields(m)
	case e.Keyboard != nil:
		e.Keyboard.fields(m)
	case e.UI != nil:
		e.UI.fields(m)
	case e.Input != nil:
		e.Input.fields(m)
	case e.Change != nil:
		e.Change.fields(m)
	case e.Touch != nil:
		e.Touch.ModifierInit.fields(m)
		m["changedTouches"] = touchList(e.Touch.ChangedTouches)
		m["targetTouches"] = touchList(e.Touch.TargetTouches)
		m["touches"] = touchList(e.Touch.Touches)
	}
	return m
}

// Record returns the trace form of the event: kind, seq, timeStamp,
// target label and the flattened fields.
func (e *Event) Record() map[string]any {
	return map[string]any{
		"kind":      string(e.Kind),
		"seq":       e.Seq,
		"timeStamp": e.TimeStamp,
		"target":    LabelOf(e.Target),
		"fields":    e.Fields(),
	}
}
