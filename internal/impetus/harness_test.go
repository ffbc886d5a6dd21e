package impetus

import (
	"testing"
	"time"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	clock   *frame.FakeClock
	queue   *frame.Queue
	sched   frame.Scheduler
	surface *input.Surface
	c       *Controller

	updates []motion.Point
	events  []string
}

func newHarness(mutate func(*Options)) (*harness, error) {
	h := &harness{
		clock:   frame.NewFakeClock(epoch),
		surface: input.NewSurface(),
	}
	h.queue = frame.NewQueue(h.clock)
	h.sched = h.queue

	opts := DefaultOptions()
	opts.Surface = h.surface
	opts.Clock = h.clock
	opts.OnUpdate = func(x, y float64) { h.updates = append(h.updates, motion.Point{X: x, Y: y}) }
	opts.OnStart = func(x, y float64) { h.events = append(h.events, "start") }
	opts.OnStartDecelerating = func(x, y float64) { h.events = append(h.events, "decel-start") }
	opts.OnEndDecelerating = func(x, y float64) { h.events = append(h.events, "decel-end") }
	if mutate != nil {
		mutate(&opts)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = h.sched
	}

	c, err := New(opts)
	if err != nil {
		return nil, err
	}
	h.c = c
	return h, nil
}

func mustHarness(t *testing.T, mutate func(*Options)) *harness {
	t.Helper()
	h, err := newHarness(mutate)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return h
}

func (h *harness) dispatch(k input.Kind, x, y float64, contact int) {
	h.surface.Dispatch(input.Event{Kind: k, PointerSample: input.PointerSample{X: x, Y: y, ContactID: contact}})
}

func (h *harness) down(x, y float64) { h.dispatch(input.Down, x, y, input.MouseContact) }
func (h *harness) move(x, y float64) { h.dispatch(input.Move, x, y, input.MouseContact) }
func (h *harness) up(x, y float64)   { h.dispatch(input.Up, x, y, input.MouseContact) }

func (h *harness) wait(ms int) { h.clock.Advance(time.Duration(ms) * time.Millisecond) }

// frame advances one 60fps frame and flushes the queue.
func (h *harness) frame() int {
	h.clock.Advance(frame.Interval(frame.DefaultFPS))
	return h.queue.Flush()
}

// settle flushes frames until nothing is pending and returns how many
// frames ran callbacks.
func (h *harness) settle(max int) int {
	n := 0
	for h.queue.Pending() > 0 && n < max {
		h.frame()
		n++
	}
	return n
}

// throw performs the reference release: (0,0) at t=0 to (100,0) at t=50.
func (h *harness) throw() {
	h.down(0, 0)
	h.wait(50)
	h.move(100, 0)
	h.up(100, 0)
}

func (h *harness) last() motion.Point {
	if len(h.updates) == 0 {
		return motion.Point{}
	}
	return h.updates[len(h.updates)-1]
}

// lazyScheduler never cancels, which leaves stale callbacks in the queue.
type lazyScheduler struct {
	q *frame.Queue
}

func (s lazyScheduler) Request(cb frame.Callback) frame.Handle { return s.q.Request(cb) }
func (s lazyScheduler) Cancel(frame.Handle)                    {}
