package metrics

import (
	"math"

	"github.com/san-kum/impetus/internal/motion"
)

// Overshoot is the largest distance the target reached outside its bounds.
type Overshoot struct {
	name   string
	bounds motion.Bounds
	max    float64
}

func NewOvershoot(b motion.Bounds) *Overshoot {
	return &Overshoot{name: "overshoot", bounds: b}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(p motion.Point, tick int) {
	ov := motion.Evaluate(p, o.bounds)
	if d := math.Hypot(ov.X, ov.Y); d > o.max {
		o.max = d
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { o.max = 0 }

// Containment is the fraction of observed positions inside the bounds.
type Containment struct {
	name       string
	bounds     motion.Bounds
	violations int
	samples    int
}

func NewContainment(b motion.Bounds) *Containment {
	return &Containment{name: "containment", bounds: b}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(p motion.Point, tick int) {
	c.samples++
	if !motion.Evaluate(p, c.bounds).InBounds {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
