package impetus

import (
	"time"

	"github.com/san-kum/impetus/internal/motion"
	"go.uber.org/zap"
)

// startDecel turns the tracking window into a release velocity and either
// starts the deceleration chain or settles immediately.
func (c *Controller) startDecel() {
	c.velocity = c.window.Velocity(c.integ.Multiplier)
	overflow := motion.Evaluate(c.target, c.bounds)

	c.emit(c.onStartDecelerating)
	if c.destroyed {
		c.velocity = motion.Velocity{}
		return
	}

	if c.velocity.Exceeds(motion.ThrowThreshold) || !overflow.InBounds {
		c.state = Decelerating
		c.decel = c.sched.Request(c.decelTick)
		c.log.Debug("deceleration started",
			zap.Float64("vx", c.velocity.X),
			zap.Float64("vy", c.velocity.Y),
			zap.Bool("in_bounds", overflow.InBounds),
		)
		return
	}

	c.state = Idle
	c.velocity = motion.Velocity{}
	c.emit(c.onEndDecelerating)
}

// decelTick runs one deceleration frame and schedules the next until the
// motion settles. A tick left over from an interrupted deceleration does
// nothing.
func (c *Controller) decelTick(time.Time) {
	if c.state != Decelerating {
		return
	}
	c.decel = 0

	step := c.integ.Decel(c.target, c.velocity, c.bounds)
	c.target = step.Target
	c.velocity = step.Velocity
	c.emit(c.onUpdate)
	if c.state != Decelerating {
		// the update callback destroyed or took over the controller
		return
	}

	if step.Settled {
		c.state = Idle
		c.velocity = motion.Velocity{}
		c.log.Debug("deceleration settled", zap.Float64("x", c.target.X), zap.Float64("y", c.target.Y))
		c.emit(c.onEndDecelerating)
		return
	}

	c.decel = c.sched.Request(c.decelTick)
}

func (c *Controller) cancelDecel() {
	if c.decel != 0 {
		c.sched.Cancel(c.decel)
		c.decel = 0
	}
	if c.state == Decelerating {
		c.state = Idle
		c.velocity = motion.Velocity{}
	}
}
