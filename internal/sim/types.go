package sim

import (
	"errors"
	"time"

	"github.com/san-kum/impetus/internal/gesture"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/motion"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// PhaseInit labels the update fired by InitialValues, before the controller
// exists.
const PhaseInit = "init"

// Epoch is the fake-clock start of every headless run.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Frame is one OnUpdate delivery. Tick counts the frames completed before
// the update.
type Frame struct {
	Tick  int
	Time  time.Duration
	Phase string
	X, Y  float64
}

func (f Frame) Point() motion.Point { return motion.Point{X: f.X, Y: f.Y} }

// Event records a lifecycle callback.
type Event struct {
	Tick int
	Name string
	X, Y float64
}

const (
	EventStart             = "start"
	EventStartDecelerating = "start_decelerating"
	EventEndDecelerating   = "end_decelerating"
)

type Config struct {
	Options  impetus.Options
	Gesture  gesture.Gesture
	FPS      int
	MaxTicks int
}

type Result struct {
	Frames  []Frame
	Events  []Event
	Metrics map[string]float64
	Ticks   int
	Settled bool
	Final   motion.Point
}

// Xs returns the x coordinate of every frame.
func (r *Result) Xs() []float64 {
	xs := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		xs[i] = f.X
	}
	return xs
}

func (r *Result) Ys() []float64 {
	ys := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		ys[i] = f.Y
	}
	return ys
}

// Phase returns the frames delivered in the given phase.
func (r *Result) Phase(name string) []Frame {
	var out []Frame
	for _, f := range r.Frames {
		if f.Phase == name {
			out = append(out, f)
		}
	}
	return out
}
