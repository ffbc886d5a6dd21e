package impetus

import (
	"fmt"
	"math"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
	"go.uber.org/zap"
)

// Callback receives the target coordinates.
type Callback func(x, y float64)

type Options struct {
	// Surface receives move, up and cancel events while a drag is active.
	// Defaults to input.Default().
	Surface *input.Surface
	// Source receives pointer-down events. When nil, Selector is resolved
	// against Surface; an empty Selector means the surface root.
	Source   input.Source
	Selector string

	OnUpdate            Callback
	OnStart             Callback
	OnStartDecelerating Callback
	OnEndDecelerating   Callback

	// Multiplier and Friction fall back to their defaults when zero.
	Multiplier float64
	Friction   float64
	// NoBounce pins the target at a bound instead of letting it overshoot
	// and spring back. The zero value bounces.
	NoBounce bool

	InitialValues *motion.Point
	BoundX        *motion.Range
	BoundY        *motion.Range

	// Scheduler defaults to frame.Default() and Clock to the system clock.
	Scheduler frame.Scheduler
	Clock     frame.Clock
	Logger    *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Multiplier: motion.DefaultMultiplier,
		Friction:   motion.DefaultFriction,
	}
}

func (o *Options) applyDefaults() {
	if o.Multiplier == 0 {
		o.Multiplier = motion.DefaultMultiplier
	}
	if o.Friction == 0 {
		o.Friction = motion.DefaultFriction
	}
	if o.Surface == nil {
		o.Surface = input.Default()
	}
	if o.Scheduler == nil {
		o.Scheduler = frame.Default()
	}
	if o.Clock == nil {
		o.Clock = frame.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

func (o *Options) validate() error {
	if o.Multiplier <= 0 || math.IsNaN(o.Multiplier) || math.IsInf(o.Multiplier, 0) {
		return fmt.Errorf("%w: multiplier must be positive, got %v", ErrInvalidOption, o.Multiplier)
	}
	if !(o.Friction > 0 && o.Friction < 1) {
		return fmt.Errorf("%w: friction must be in (0,1), got %v", ErrInvalidOption, o.Friction)
	}
	if o.BoundX != nil && !o.BoundX.IsValid() {
		return fmt.Errorf("%w: bound x %v", ErrInvalidOption, *o.BoundX)
	}
	if o.BoundY != nil && !o.BoundY.IsValid() {
		return fmt.Errorf("%w: bound y %v", ErrInvalidOption, *o.BoundY)
	}
	if o.InitialValues != nil && !o.InitialValues.IsValid() {
		return fmt.Errorf("%w: initial values %v", ErrInvalidOption, *o.InitialValues)
	}
	return nil
}

func (o *Options) resolveSource() (input.Source, error) {
	if o.Source != nil {
		return o.Source, nil
	}
	el, ok := o.Surface.Query(o.Selector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, o.Selector)
	}
	return el, nil
}
