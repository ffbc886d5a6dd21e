package impetus

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
	"go.uber.org/zap"
)

// Controller owns the target, the tracking window and the deceleration
// state of one draggable source.
type Controller struct {
	onUpdate            Callback
	onStart             Callback
	onStartDecelerating Callback
	onEndDecelerating   Callback

	surface *input.Surface
	source  input.Source
	sched   frame.Scheduler
	clock   frame.Clock
	log     *zap.Logger

	integ  *motion.Integrator
	window *motion.TrackingWindow
	bounds motion.Bounds

	target   motion.Point
	velocity motion.Velocity
	state    State

	contact        int
	pointerLast    motion.Point
	pointerCurrent motion.Point

	// ticking is set while a drag frame is outstanding.
	ticking   bool
	dragFrame frame.Handle
	decel     frame.Handle

	paused    bool
	destroyed bool

	unsubDown func()
	unsubDrag []func()
}

// New validates opts, seeds the target and subscribes to pointer-down on
// the source. When InitialValues is set OnUpdate fires once before New
// returns.
func New(opts Options) (*Controller, error) {
	opts.applyDefaults()

	source, err := opts.resolveSource()
	if err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if opts.OnUpdate == nil {
		return nil, fmt.Errorf("new controller: %w", ErrNoUpdateFunc)
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	c := &Controller{
		onUpdate:            opts.OnUpdate,
		onStart:             opts.OnStart,
		onStartDecelerating: opts.OnStartDecelerating,
		onEndDecelerating:   opts.OnEndDecelerating,
		surface:             opts.Surface,
		source:              source,
		sched:               opts.Scheduler,
		clock:               opts.Clock,
		log:                 opts.Logger,
		integ:               motion.NewIntegrator(opts.Multiplier, opts.Friction, !opts.NoBounce),
		window:              motion.NewTrackingWindow(),
		bounds:              motion.Bounds{X: copyRange(opts.BoundX), Y: copyRange(opts.BoundY)},
	}

	if opts.InitialValues != nil {
		c.target = *opts.InitialValues
		c.emit(c.onUpdate)
	}

	c.unsubDown = c.source.OnDown(c.handleDown)

	c.log.Debug("controller ready",
		zap.Float64("multiplier", opts.Multiplier),
		zap.Float64("friction", opts.Friction),
		zap.Bool("bounce", !opts.NoBounce),
	)
	return c, nil
}

// Values returns the current target.
func (c *Controller) Values() (x, y float64) { return c.target.X, c.target.Y }

func (c *Controller) State() State { return c.state }

// Velocity returns the deceleration velocity; it is zero unless the
// controller is decelerating.
func (c *Controller) Velocity() motion.Velocity { return c.velocity }

func (c *Controller) Multiplier() float64 { return c.integ.Multiplier }

func (c *Controller) Bounds() motion.Bounds {
	return motion.Bounds{X: copyRange(c.bounds.X), Y: copyRange(c.bounds.Y)}
}

func (c *Controller) Paused() bool { return c.paused }

func (c *Controller) Destroyed() bool { return c.destroyed }

// Pause stops tracking the active pointer and blocks new drags until
// Resume. A running deceleration is left alone.
func (c *Controller) Pause() {
	c.paused = true
	if c.state == Dragging {
		c.cancelDragFrame()
		c.detachDrag()
		c.state = Idle
		c.log.Debug("drag abandoned by pause")
	}
}

func (c *Controller) Resume() {
	c.paused = false
}

// SetValues moves the target without notifying OnUpdate.
func (c *Controller) SetValues(x, y float64) {
	if !math.IsNaN(x) {
		c.target.X = x
	}
	if !math.IsNaN(y) {
		c.target.Y = y
	}
}

// SetMultiplier changes the pointer-to-target scale and the stop
// threshold derived from it. Non-positive values are ignored.
func (c *Controller) SetMultiplier(v float64) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		c.log.Warn("ignoring invalid multiplier", zap.Float64("multiplier", v))
		return
	}
	c.integ.Multiplier = v
}

// SetBoundX replaces the x bound. An inverted or NaN range is ignored.
func (c *Controller) SetBoundX(r motion.Range) {
	if c.checkBound("x", r) {
		c.bounds.X = &r
	}
}

func (c *Controller) SetBoundY(r motion.Range) {
	if c.checkBound("y", r) {
		c.bounds.Y = &r
	}
}

func (c *Controller) checkBound(axis string, r motion.Range) bool {
	if r.IsValid() {
		return true
	}
	c.log.Warn("ignoring invalid bound",
		zap.String("axis", axis),
		zap.Float64("min", r.Min),
		zap.Float64("max", r.Max),
	)
	return false
}

func (c *Controller) ClearBoundX() { c.bounds.X = nil }

func (c *Controller) ClearBoundY() { c.bounds.Y = nil }

// Destroy detaches every listener and cancels outstanding frames. It is
// safe to call more than once.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	if c.unsubDown != nil {
		c.unsubDown()
		c.unsubDown = nil
	}
	c.detachDrag()
	c.cancelDragFrame()
	c.cancelDecel()
	c.state = Idle
	c.log.Debug("controller destroyed")
}

func (c *Controller) handleDown(p input.PointerSample) {
	if c.destroyed || c.paused || c.state == Dragging {
		return
	}
	if c.state == Decelerating {
		c.cancelDecel()
		c.log.Debug("deceleration interrupted")
	}

	c.emit(c.onStart)
	if c.destroyed || c.paused {
		return
	}

	c.state = Dragging
	c.velocity = motion.Velocity{}
	c.contact = p.ContactID
	c.pointerLast = motion.Point{X: p.X, Y: p.Y}
	c.pointerCurrent = c.pointerLast

	c.window.Reset()
	c.window.Add(p.X, p.Y, c.clock.Now())

	c.unsubDrag = append(c.unsubDrag,
		c.surface.On(input.Move, c.handleMove),
		c.surface.On(input.Up, c.handleRelease),
		c.surface.On(input.Cancel, c.handleRelease),
	)

	c.log.Debug("drag started", zap.Int("contact", p.ContactID), zap.Float64("x", p.X), zap.Float64("y", p.Y))
}

func (c *Controller) handleMove(p input.PointerSample) {
	if !c.tracking(p) {
		return
	}
	c.pointerCurrent = motion.Point{X: p.X, Y: p.Y}
	c.window.Add(p.X, p.Y, c.clock.Now())
	c.requestTick()
}

func (c *Controller) handleRelease(p input.PointerSample) {
	if !c.tracking(p) {
		return
	}
	// apply the move that is still waiting for its frame
	if c.ticking {
		c.cancelDragFrame()
		c.applyDrag()
		// OnUpdate may have destroyed or paused the controller
		if c.state != Dragging {
			return
		}
	}
	c.detachDrag()

	c.window.Add(c.pointerLast.X, c.pointerLast.Y, c.clock.Now())
	c.startDecel()
}

func (c *Controller) tracking(p input.PointerSample) bool {
	if c.state != Dragging {
		return false
	}
	if p.ContactID != c.contact {
		c.log.Debug("ignoring foreign contact", zap.Int("contact", p.ContactID), zap.Int("active", c.contact))
		return false
	}
	return true
}

// requestTick coalesces moves so only one drag frame is outstanding.
func (c *Controller) requestTick() {
	if !c.ticking {
		c.dragFrame = c.sched.Request(c.dragTick)
	}
	c.ticking = true
}

func (c *Controller) dragTick(time.Time) {
	c.ticking = false
	c.dragFrame = 0
	if c.state != Dragging {
		return
	}
	c.applyDrag()
}

func (c *Controller) applyDrag() {
	delta := c.pointerCurrent.Sub(c.pointerLast)
	c.target = c.integ.Drag(c.target, delta.X, delta.Y, c.bounds)
	c.emit(c.onUpdate)
	c.pointerLast = c.pointerCurrent
}

func (c *Controller) cancelDragFrame() {
	if c.ticking {
		c.sched.Cancel(c.dragFrame)
	}
	c.ticking = false
	c.dragFrame = 0
}

func (c *Controller) detachDrag() {
	for _, unsub := range c.unsubDrag {
		unsub()
	}
	c.unsubDrag = c.unsubDrag[:0]
}

func (c *Controller) emit(cb Callback) {
	if cb != nil {
		cb(c.target.X, c.target.Y)
	}
}

func copyRange(r *motion.Range) *motion.Range {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
