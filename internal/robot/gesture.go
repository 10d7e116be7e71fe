package robot

import (
	"fmt"
	"math"
	"slices"

	"github.com/roach88/nono/internal/event"
)

// Direction is the principal axis and sense of a pan.
type Direction string

const (
	Top    Direction = "top"
	Bottom Direction = "bottom"
	Left   Direction = "left"
	Right  Direction = "right"
)

// MaxPanTouches is the largest number of touch points a pan can drive.
const MaxPanTouches = 4

// ParseDirection returns the Direction named s.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", newDirectionError(d)
	}
	return d, nil
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// Gesture describes a straight-line pan of one to four touch points.
type Gesture struct {
	// IDs are the touch identifiers, one per point.
	IDs []int

	// Distance is travelled along the principal axis.
	Distance float64

	// Direction selects the principal axis and its sense.
	Direction Direction

	// Starts are the starting positions, matched to IDs by index. Missing
	// entries and unset coordinates start at 0.
	Starts []event.TouchPointInit

	// Deviation is travelled along the secondary axis.
	Deviation float64

	// Steps is the number of touchmove rounds. Values below 1 mean 1.
	Steps int

	// Init is applied to every emitted touch event.
	Init event.TouchInit

	// Target overrides the default sink, and becomes the new default.
	Target event.Sink
}

// PanOption configures a pan.
type PanOption func(*Gesture)

// WithDeviation sets the secondary-axis distance. Default 0.
func WithDeviation(d float64) PanOption {
	return func(g *Gesture) {
		g.Deviation = d
	}
}

// WithSteps sets the number of touchmove rounds. Default 1.
func WithSteps(n int) PanOption {
	return func(g *Gesture) {
		g.Steps = n
	}
}

// WithStarts sets the starting positions of multi-point pans.
func WithStarts(pts ...event.TouchPointInit) PanOption {
	return func(g *Gesture) {
		g.Starts = pts
	}
}

// WithTouchInit sets fields shared by every emitted touch event.
func WithTouchInit(init event.TouchInit) PanOption {
	return func(g *Gesture) {
		g.Init = init
	}
}

// WithPanTarget sends the pan to sink.
func WithPanTarget(sink event.Sink) PanOption {
	return func(g *Gesture) {
		g.Target = sink
	}
}

// Pan drags one touch point from start.
func (r *Robot) Pan(id int, distance float64, dir Direction, start event.TouchPointInit, opts ...PanOption) *Robot {
	g := Gesture{IDs: []int{id}, Distance: distance, Direction: dir, Starts: []event.TouchPointInit{start}, Steps: 1}
	return r.pan(g, opts)
}

// TwoPan drags two touch points together.
func (r *Robot) TwoPan(id1, id2 int, distance float64, dir Direction, opts ...PanOption) *Robot {
	return r.pan(Gesture{IDs: []int{id1, id2}, Distance: distance, Direction: dir, Steps: 1}, opts)
}

// ThreePan drags three touch points together.
func (r *Robot) ThreePan(id1, id2, id3 int, distance float64, dir Direction, opts ...PanOption) *Robot {
	return r.pan(Gesture{IDs: []int{id1, id2, id3}, Distance: distance, Direction: dir, Steps: 1}, opts)
}

// FourPan drags four touch points together.
func (r *Robot) FourPan(id1, id2, id3, id4 int, distance float64, dir Direction, opts ...PanOption) *Robot {
	return r.pan(Gesture{IDs: []int{id1, id2, id3, id4}, Distance: distance, Direction: dir, Steps: 1}, opts)
}

func (r *Robot) pan(g Gesture, opts []PanOption) *Robot {
	for _, opt := range opts {
		opt(&g)
	}
	return r.PanGesture(g)
}

// PanGesture runs g:
//
//  1. one touchstart per point at its start position
//  2. Steps rounds of one touchmove per point, each point advancing from
//     its own last position by floor(Distance/Steps) and
//     floor(Deviation/Steps)
//  3. one touchend per point at start + Distance/Deviation exactly
//
// Moves accumulate the floored increments and may stop short of the total;
// the end always lands on it.
func (r *Robot) PanGesture(g Gesture) *Robot {
	if r.err != nil {
		return r
	}
	if err := g.validate(); err != nil {
		r.fail(err)
		return r
	}

	steps := max(1, g.Steps)
	stepDistance := math.Floor(g.Distance / float64(steps))
	stepDeviation := math.Floor(g.Deviation / float64(steps))

	starts := g.positions()
	last := slices.Clone(starts)

	for _, p := range starts {
		if !r.touch(event.KindTouchStart, g.Target, g.Init, Points(p.init())) {
			return r
		}
	}
	for range steps {
		for i := range last {
			last[i] = last[i].moved(g.Direction, stepDistance, stepDeviation)
			if !r.touch(event.KindTouchMove, g.Target, g.Init, Points(last[i].init())) {
				return r
			}
		}
	}
	for _, p := range starts {
		end := p.moved(g.Direction, g.Distance, g.Deviation)
		if !r.touch(event.KindTouchEnd, g.Target, g.Init, Points(end.init())) {
			return r
		}
	}
	return r
}

func (g Gesture) validate() error {
	if n := len(g.IDs); n < 1 || n > MaxPanTouches {
		return newGestureError("pan needs 1 to %d touch points, got %d", MaxPanTouches, n)
	}
	if len(g.Starts) > len(g.IDs) {
		return newGestureError("%d start positions for %d touch points", len(g.Starts), len(g.IDs))
	}
	if !g.Direction.Valid() {
		return newDirectionError(g.Direction)
	}
	return nil
}

func (g Gesture) positions() []position {
	out := make([]position, len(g.IDs))
	for i, id := range g.IDs {
		var start event.TouchPointInit
		if i < len(g.Starts) {
			start = g.Starts[i]
		}
		out[i] = position{
			id:      id,
			clientX: start.ClientX.Value(),
			clientY: start.ClientY.Value(),
			pageX:   start.PageX.Value(),
			pageY:   start.PageY.Value(),
			screenX: start.ScreenX.Value(),
			screenY: start.ScreenY.Value(),
		}
	}
	return out
}

// position is a pan point: identifier plus the three coordinate pairs.
type position struct {
	id               int
	clientX, clientY float64
	pageX, pageY     float64
	screenX, screenY float64
}

// moved returns p shifted by principal along dir and by secondary across it.
func (p position) moved(dir Direction, principal, secondary float64) position {
	var dx, dy float64
	switch dir {
	case Bottom:
		dx, dy = secondary, principal
	case Top:
		dx, dy = secondary, -principal
	case Left:
		dx, dy = -principal, secondary
	case Right:
		dx, dy = principal, secondary
	default:
		panic(fmt.Sprintf("robot: unvalidated direction %q", string(dir)))
	}
	p.clientX += dx
	p.clientY += dy
	p.pageX += dx
	p.pageY += dy
	p.screenX += dx
	p.screenY += dy
	return p
}

func (p position) init() event.TouchPointInit {
	return event.TouchPointInit{
		Identifier: event.Some(p.id),
		ClientX:    event.Some(p.clientX),
		ClientY:    event.Some(p.clientY),
		PageX:      event.Some(p.pageX),
		PageY:      event.Some(p.pageY),
		ScreenX:    event.Some(p.screenX),
		ScreenY:    event.Some(p.screenY),
	}
}
