package motion

// Integrator advances the target one frame at a time.
type Integrator struct {
	Multiplier float64
	Friction   float64
	Bounce     bool
}

func NewIntegrator(multiplier, friction float64, bounce bool) *Integrator {
	return &Integrator{
		Multiplier: multiplier,
		Friction:   friction,
		Bounce:     bounce,
	}
}

func (in *Integrator) StopThreshold() float64 {
	return StopThreshold(in.Multiplier)
}

// Drag applies the pointer delta (dx, dy) to p. With bounce the part of
// the delta that lands outside b is progressively resisted, otherwise p is
// clamped to b.
func (in *Integrator) Drag(p Point, dx, dy float64, b Bounds) Point {
	p.X += dx * in.Multiplier
	p.Y += dy * in.Multiplier

	o := Evaluate(p, b)
	if !in.Bounce {
		return Clamp(p, b, o)
	}

	if o.X != 0 {
		p.X -= dx * DragDamping(o.X) * in.Multiplier
	}
	if o.Y != 0 {
		p.Y -= dy * DragDamping(o.Y) * in.Multiplier
	}
	return p
}

// Step is the outcome of one deceleration frame.
type Step struct {
	Target   Point
	Velocity Velocity
	// Overflow is measured right after the move, before any bounds response.
	Overflow Overflow
	// Settled is set when the frame was the last one of the deceleration.
	Settled bool
}

// Decel applies friction, moves p by the decayed velocity and, unless the
// motion has settled, applies the bounds response for the next frame.
func (in *Integrator) Decel(p Point, v Velocity, b Bounds) Step {
	v = v.Scale(in.Friction)
	p = p.Add(v)

	o := Evaluate(p, b)
	step := Step{Target: p, Velocity: v, Overflow: o}

	if !v.Exceeds(in.StopThreshold()) && o.InBounds {
		step.Settled = true
		return step
	}

	if in.Bounce {
		step.Velocity.X = rebound(o.X, v.X)
		step.Velocity.Y = rebound(o.Y, v.Y)
		return step
	}

	step.Target = Clamp(p, b, o)
	if o.X != 0 {
		step.Velocity.X = 0
	}
	if o.Y != 0 {
		step.Velocity.Y = 0
	}
	return step
}

// rebound returns the next velocity on one axis given its overflow.
// Moving back toward the range gets a restoring nudge; moving further out
// is replaced by an impulse proportional to the overflow.
func rebound(diff, vel float64) float64 {
	if diff == 0 {
		return vel
	}
	if diff*vel <= 0 {
		return vel + diff*BounceDeceleration
	}
	adjust := ReboundAdjust
	if diff < 0 {
		adjust = -ReboundAdjust
	}
	return (diff + adjust) * BounceAcceleration
}
