package event

// TouchType distinguishes finger contacts from styluses.
type TouchType string

const (
	TouchDirect TouchType = "direct"
	TouchStylus TouchType = "stylus"
)

// NoIdentifier is the identifier a touch point resolves to when the caller
// left it unset.
const NoIdentifier = -1

// TouchPointInit is a caller-supplied touch point. Every field is optional.
type TouchPointInit struct {
	Identifier    Opt[int]       `yaml:"identifier"`
	ClientX       Opt[float64]   `yaml:"clientX"`
	ClientY       Opt[float64]   `yaml:"clientY"`
	PageX         Opt[float64]   `yaml:"pageX"`
	PageY         Opt[float64]   `yaml:"pageY"`
	ScreenX       Opt[float64]   `yaml:"screenX"`
	ScreenY       Opt[float64]   `yaml:"screenY"`
	Force         Opt[float64]   `yaml:"force"`
	RadiusX       Opt[float64]   `yaml:"radiusX"`
	RadiusY       Opt[float64]   `yaml:"radiusY"`
	RotationAngle Opt[float64]   `yaml:"rotationAngle"`
	AltitudeAngle Opt[float64]   `yaml:"altitudeAngle"`
	AzimuthAngle  Opt[float64]   `yaml:"azimuthAngle"`
	TouchType     Opt[TouchType] `yaml:"touchType"`
}

func (p TouchPointInit) Merge(stored TouchPointInit) TouchPointInit {
	return TouchPointInit{
		Identifier:    p.Identifier.Over(stored.Identifier),
		ClientX:       p.ClientX.Over(stored.ClientX),
		ClientY:       p.ClientY.Over(stored.ClientY),
		PageX:         p.PageX.Over(stored.PageX),
		PageY:         p.PageY.Over(stored.PageY),
		ScreenX:       p.ScreenX.Over(stored.ScreenX),
		ScreenY:       p.ScreenY.Over(stored.ScreenY),
		Force:         p.Force.Over(stored.Force),
		RadiusX:       p.RadiusX.Over(stored.RadiusX),
		RadiusY:       p.RadiusY.Over(stored.RadiusY),
		RotationAngle: p.RotationAngle.Over(stored.RotationAngle),
		AltitudeAngle: p.AltitudeAngle.Over(stored.AltitudeAngle),
		AzimuthAngle:  p.AzimuthAngle.Over(stored.AzimuthAngle),
		TouchType:     p.TouchType.Over(stored.TouchType),
	}
}

// Resolve turns the point into a concrete Touch on target.
// Unset numbers are 0, an unset identifier is NoIdentifier and an unset
// touch type is TouchDirect.
func (p TouchPointInit) Resolve(target Sink) Touch {
	return Touch{
		Identifier:    p.Identifier.Or(NoIdentifier),
		ClientX:       p.ClientX.Value(),
		ClientY:       p.ClientY.Value(),
		PageX:         p.PageX.Value(),
		PageY:         p.PageY.Value(),
		ScreenX:       p.ScreenX.Value(),
		ScreenY:       p.ScreenY.Value(),
		Force:         p.Force.Value(),
		RadiusX:       p.RadiusX.Value(),
		RadiusY:       p.RadiusY.Value(),
		RotationAngle: p.RotationAngle.Value(),
		AltitudeAngle: p.AltitudeAngle.Value(),
		AzimuthAngle:  p.AzimuthAngle.Value(),
		TouchType:     p.TouchType.Or(TouchDirect),
		Target:        target,
	}
}

// Touch is a resolved touch point.
type Touch struct {
	Identifier    int
	ClientX       float64
	ClientY       float64
	PageX         float64
	PageY         float64
	ScreenX       float64
	ScreenY       float64
	Force         float64
	RadiusX       float64
	RadiusY       float64
	RotationAngle float64
	AltitudeAngle float64
	AzimuthAngle  float64
	TouchType     TouchType
	Target        Sink
}

// Init converts t back into a fully present TouchPointInit.
func (t Touch) Init() TouchPointInit {
	return TouchPointInit{
		Identifier:    Some(t.Identifier),
		ClientX:       Some(t.ClientX),
		ClientY:       Some(t.ClientY),
		PageX:         Some(t.PageX),
		PageY:         Some(t.PageY),
		ScreenX:       Some(t.ScreenX),
		ScreenY:       Some(t.ScreenY),
		Force:         Some(t.Force),
		RadiusX:       Some(t.RadiusX),
		RadiusY:       Some(t.RadiusY),
		RotationAngle: Some(t.RotationAngle),
		AltitudeAngle: Some(t.AltitudeAngle),
		AzimuthAngle:  Some(t.AzimuthAngle),
		TouchType:     Some(t.TouchType),
	}
}

func (t Touch) fields() map[string]any {
	return map[string]any{
		"identifier":    t.Identifier,
		"clientX":       t.ClientX,
		"clientY":       t.ClientY,
		"pageX":         t.PageX,
		"pageY":         t.PageY,
		"screenX":       t.ScreenX,
		"screenY":       t.ScreenY,
		"force":         t.Force,
		"radiusX":       t.RadiusX,
		"radiusY":       t.RadiusY,
		"rotationAngle": t.RotationAngle,
		"altitudeAngle": t.AltitudeAngle,
		"azimuthAngle":  t.AzimuthAngle,
		"touchType":     string(t.TouchType),
		"target":        LabelOf(t.Target),
	}
}

func touchList(ts []Touch) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = t.fields()
	}
	return out
}
