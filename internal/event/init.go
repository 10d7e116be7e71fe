package event

// Record is a per-category init record.
type Record[T any] interface {
	// Merge returns the receiver merged over stored, field by field.
	Merge(stored T) T
	// WithDefaults fills the fields the robot always sets.
	WithDefaults() T
}

// EventInit holds the fields every event carries. Change events use it as is.
type EventInit struct {
	Bubbles    Opt[bool] `yaml:"bubbles"`
	Cancelable Opt[bool] `yaml:"cancelable"`
	Composed   Opt[bool] `yaml:"composed"`
}

func (e EventInit) Merge(stored EventInit) EventInit {
	return EventInit{
		Bubbles:    e.Bubbles.Over(stored.Bubbles),
		Cancelable: e.Cancelable.Over(stored.Cancelable),
		Composed:   e.Composed.Over(stored.Composed),
	}
}

// WithDefaults sets Bubbles to true unless the caller set it.
func (e EventInit) WithDefaults() EventInit {
	if !e.Bubbles.IsSet() {
		e.Bubbles = Some(true)
	}
	return e
}

func (e EventInit) fields(m map[string]any) {
	m["bubbles"] = e.Bubbles.Value()
	m["cancelable"] = e.Cancelable.Value()
	m["composed"] = e.Composed.Value()
}

// UIInit is used by scroll events.
type UIInit struct {
	EventInit `yaml:",inline"`
	Detail    Opt[int] `yaml:"detail"`
}

func (u UIInit) Merge(stored UIInit) UIInit {
	return UIInit{
		EventInit: u.EventInit.Merge(stored.EventInit),
		Detail:    u.Detail.Over(stored.Detail),
	}
}

func (u UIInit) WithDefaults() UIInit {
	u.EventInit = u.EventInit.WithDefaults()
	return u
}

func (u UIInit) fields(m map[string]any) {
	u.EventInit.fields(m)
	m["detail"] = u.Detail.Value()
}

// ModifierInit adds the modifier key state.
type ModifierInit struct {
	UIInit   `yaml:",inline"`
	CtrlKey  Opt[bool] `yaml:"ctrlKey"`
	ShiftKey Opt[bool] `yaml:"shiftKey"`
	AltKey   Opt[bool] `yaml:"altKey"`
	MetaKey  Opt[bool] `yaml:"metaKey"`
}

func (k ModifierInit) Merge(stored ModifierInit) ModifierInit {
	return ModifierInit{
		UIInit:   k.UIInit.Merge(stored.UIInit),
		CtrlKey:  k.CtrlKey.Over(stored.CtrlKey),
		ShiftKey: k.ShiftKey.Over(stored.ShiftKey),
		AltKey:   k.AltKey.Over(stored.AltKey),
		MetaKey:  k.MetaKey.Over(stored.MetaKey),
	}
}

func (k ModifierInit) WithDefaults() ModifierInit {
	k.UIInit = k.UIInit.WithDefaults()
	return k
}

func (k ModifierInit) fields(m map[string]any) {
	k.UIInit.fields(m)
	m["ctrlKey"] = k.CtrlKey.Value()
	m["shiftKey"] = k.ShiftKey.Value()
	m["altKey"] = k.AltKey.Value()
	m["metaKey"] = k.MetaKey.Value()
}

// MouseInit is used by click, dblclick, auxclick and the mouse* kinds.
type MouseInit struct {
	ModifierInit `yaml:",inline"`
	ScreenX      Opt[float64] `yaml:"screenX"`
	ScreenY      Opt[float64] `yaml:"screenY"`
	ClientX      Opt[float64] `yaml:"clientX"`
	ClientY      Opt[float64] `yaml:"clientY"`
	MovementX    Opt[float64] `yaml:"movementX"`
	MovementY    Opt[float64] `yaml:"movementY"`
	Button       Opt[int]     `yaml:"button"`
	Buttons      Opt[int]     `yaml:"buttons"`
}

func (p MouseInit) Merge(stored MouseInit) MouseInit {
	return MouseInit{
		ModifierInit: p.ModifierInit.Merge(stored.ModifierInit),
		ScreenX:      p.ScreenX.Over(stored.ScreenX),
		ScreenY:      p.ScreenY.Over(stored.ScreenY),
		ClientX:      p.ClientX.Over(stored.ClientX),
		ClientY:      p.ClientY.Over(stored.ClientY),
		MovementX:    p.MovementX.Over(stored.MovementX),
		MovementY:    p.MovementY.Over(stored.MovementY),
		Button:       p.Button.Over(stored.Button),
		Buttons:      p.Buttons.Over(stored.Buttons),
	}
}

func (p MouseInit) WithDefaults() MouseInit {
	p.ModifierInit = p.ModifierInit.WithDefaults()
	return p
}

func (p MouseInit) fields(m map[string]any) {
	p.ModifierInit.fields(m)
	m["screenX"] = p.ScreenX.Value()
	m["screenY"] = p.ScreenY.Value()
	m["clientX"] = p.ClientX.Value()
	m["clientY"] = p.ClientY.Value()
	m["movementX"] = p.MovementX.Value()
	m["movementY"] = p.MovementY.Value()
	m["button"] = p.Button.Value()
	m["buttons"] = p.Buttons.Value()
}

// WheelInit is used by wheel events.
type WheelInit struct {
	MouseInit `yaml:",inline"`
	DeltaX    Opt[float64] `yaml:"deltaX"`
	DeltaY    Opt[float64] `yaml:"deltaY"`
	DeltaZ    Opt[float64] `yaml:"deltaZ"`
	DeltaMode Opt[int]     `yaml:"deltaMode"`
}

func (w WheelInit) Merge(stored WheelInit) WheelInit {
	return WheelInit{
		MouseInit: w.MouseInit.Merge(stored.MouseInit),
		DeltaX:    w.DeltaX.Over(stored.DeltaX),
		DeltaY:    w.DeltaY.Over(stored.DeltaY),
		DeltaZ:    w.DeltaZ.Over(stored.DeltaZ),
		DeltaMode: w.DeltaMode.Over(stored.DeltaMode),
	}
}

func (w WheelInit) WithDefaults() WheelInit {
	w.MouseInit = w.MouseInit.WithDefaults()
	return w
}

func (w WheelInit) fields(m map[string]any) {
	w.MouseInit.fields(m)
	m["deltaX"] = w.DeltaX.Value()
	m["deltaY"] = w.DeltaY.Value()
	m["deltaZ"] = w.DeltaZ.Value()
	m["deltaMode"] = w.DeltaMode.Value()
}

// KeyboardInit is used by keydown and keyup.
type KeyboardInit struct {
	ModifierInit `yaml:",inline"`
	Key          Opt[string] `yaml:"key"`
	Code         Opt[string] `yaml:"code"`
	Location     Opt[int]    `yaml:"location"`
	Repeat       Opt[bool]   `yaml:"repeat"`
	IsComposing  Opt[bool]   `yaml:"isComposing"`
}

func (k KeyboardInit) Merge(stored KeyboardInit) KeyboardInit {
	return KeyboardInit{
		ModifierInit: k.ModifierInit.Merge(stored.ModifierInit),
		Key:          k.Key.Over(stored.Key),
		Code:         k.Code.Over(stored.Code),
		Location:     k.Location.Over(stored.Location),
		Repeat:       k.Repeat.Over(stored.Repeat),
		IsComposing:  k.IsComposing.Over(stored.IsComposing),
	}
}

func (k KeyboardInit) WithDefaults() KeyboardInit {
	k.ModifierInit = k.ModifierInit.WithDefaults()
	return k
}

func (k KeyboardInit) fields(m map[string]any) {
	k.ModifierInit.fields(m)
	m["key"] = k.Key.Value()
	m["code"] = k.Code.Value()
	m["location"] = k.Location.Value()
	m["repeat"] = k.Repeat.Value()
	m["isComposing"] = k.IsComposing.Value()
}

// InputInit is used by input events.
type InputInit struct {
	UIInit      `yaml:",inline"`
	Data        Opt[string] `yaml:"data"`
	InputType   Opt[string] `yaml:"inputType"`
	IsComposing Opt[bool]   `yaml:"isComposing"`
}

func (i InputInit) Merge(stored InputInit) InputInit {
	return InputInit{
		UIInit:      i.UIInit.Merge(stored.UIInit),
		Data:        i.Data.Over(stored.Data),
		InputType:   i.InputType.Over(stored.InputType),
		IsComposing: i.IsComposing.Over(stored.IsComposing),
	}
}

func (i InputInit) WithDefaults() InputInit {
	i.UIInit = i.UIInit.WithDefaults()
	return i
}

func (i InputInit) fields(m map[string]any) {
	i.UIInit.fields(m)
	m["data"] = i.Data.Value()
	m["inputType"] = i.InputType.Value()
	m["isComposing"] = i.IsComposing.Value()
}

// TouchInit is used by touchstart, touchmove and touchend.
type TouchInit struct {
	ModifierInit   `yaml:",inline"`
	ChangedTouches []TouchPointInit `yaml:"changedTouches"`
}

// Merge merges ChangedTouches positionally: slot i is raw[i] over
// stored[i], and the result is as long as the longer list.
func (t TouchInit) Merge(stored TouchInit) TouchInit {
	return TouchInit{
		ModifierInit:   t.ModifierInit.Merge(stored.ModifierInit),
		ChangedTouches: mergeTouchPoints(t.ChangedTouches, stored.ChangedTouches),
	}
}

func (t TouchInit) WithDefaults() TouchInit {
	t.ModifierInit = t.ModifierInit.WithDefaults()
	return t
}

func mergeTouchPoints(raw, stored []TouchPointInit) []TouchPointInit {
	n := max(len(raw), len(stored))
	if n == 0 {
		return nil
	}
	out := make([]TouchPointInit, n)
	for i := range out {
		var r, s TouchPointInit
		if i < len(raw) {
			r = raw[i]
		}
		if i < len(stored) {
			s = stored[i]
		}
		out[i] = r.Merge(s)
	}
	return out
}
