// Package gesture scripts pointer gestures and plays them back against an
// input surface on a deterministic clock.
package gesture

import (
	"sort"
	"time"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
)

// Step is one pointer event, At after the gesture starts.
type Step struct {
	At   time.Duration
	Kind input.Kind
	X, Y float64
}

type Gesture struct {
	Contact int
	Steps   []Step
}

// Swipe presses at from, moves to `to` over d in frame-sized increments,
// and releases at to.
func Swipe(from, to motion.Point, d time.Duration, fps int) Gesture {
	return Path([]motion.Point{from, to}, d, fps)
}

// Path presses at the first point and moves through the rest, spending
// equal time on each leg, then releases at the last point.
func Path(points []motion.Point, d time.Duration, fps int) Gesture {
	g := Gesture{Contact: input.MouseContact}
	if len(points) == 0 {
		return g
	}

	start := points[0]
	g.Steps = append(g.Steps, Step{At: 0, Kind: input.Down, X: start.X, Y: start.Y})

	end := points[len(points)-1]
	if len(points) > 1 && d > 0 {
		interval := frame.Interval(fps)
		n := int(d / interval)
		if n < 1 {
			n = 1
		}
		for i := 1; i <= n; i++ {
			frac := float64(i) / float64(n)
			p := along(points, frac)
			at := time.Duration(frac * float64(d))
			g.Steps = append(g.Steps, Step{At: at, Kind: input.Move, X: p.X, Y: p.Y})
		}
	}

	g.Steps = append(g.Steps, Step{At: d, Kind: input.Up, X: end.X, Y: end.Y})
	return g
}

// Tap presses and releases at p without moving.
func Tap(p motion.Point, hold time.Duration) Gesture {
	return Gesture{
		Contact: input.MouseContact,
		Steps: []Step{
			{At: 0, Kind: input.Down, X: p.X, Y: p.Y},
			{At: hold, Kind: input.Up, X: p.X, Y: p.Y},
		},
	}
}

// Hold delays the release by d, keeping the pointer still.
func (g Gesture) Hold(d time.Duration) Gesture {
	if d <= 0 || len(g.Steps) == 0 {
		return g
	}
	steps := make([]Step, len(g.Steps))
	copy(steps, g.Steps)
	for i := range steps {
		if steps[i].Kind == input.Up || steps[i].Kind == input.Cancel {
			steps[i].At += d
		}
	}
	return Gesture{Contact: g.Contact, Steps: steps}
}

func (g Gesture) Duration() time.Duration {
	if len(g.Steps) == 0 {
		return 0
	}
	return g.Steps[len(g.Steps)-1].At
}

// Event converts a step into a surface event for this gesture's contact.
func (g Gesture) Event(s Step) input.Event {
	return input.Event{
		Kind:          s.Kind,
		PointerSample: input.PointerSample{X: s.X, Y: s.Y, ContactID: g.Contact},
	}
}

// Sorted returns a copy of the steps in time order.
func (g Gesture) Sorted() []Step {
	steps := make([]Step, len(g.Steps))
	copy(steps, g.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return steps
}

func along(points []motion.Point, frac float64) motion.Point {
	legs := len(points) - 1
	pos := frac * float64(legs)
	i := int(pos)
	if i >= legs {
		return points[legs]
	}
	t := pos - float64(i)
	a, b := points[i], points[i+1]
	return motion.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
