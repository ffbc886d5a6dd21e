package frame

type entry struct {
	h        Handle
	cb       Callback
	canceled bool
}

// Queue collects frame callbacks until Flush runs them. Callbacks
// requested while a flush is in progress wait for the next one.
type Queue struct {
	clock    Clock
	next     Handle
	pending  []*entry
	inflight []*entry
	frames   int
}

func NewQueue(clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Queue{clock: clock}
}

func (q *Queue) Request(cb Callback) Handle {
	q.next++
	q.pending = append(q.pending, &entry{h: q.next, cb: cb})
	return q.next
}

func (q *Queue) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for _, e := range q.inflight {
		if e.h == h {
			e.canceled = true
			return
		}
	}
	for i, e := range q.pending {
		if e.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *Queue) Pending() int { return len(q.pending) }

// Frames returns how many flushes have run.
func (q *Queue) Frames() int { return q.frames }

// Flush runs one frame and returns the number of callbacks it executed.
func (q *Queue) Flush() int {
	q.inflight, q.pending = q.pending, nil
	now := q.clock.Now()

	ran := 0
	for _, e := range q.inflight {
		if e.canceled {
			continue
		}
		e.cb(now)
		ran++
	}

	q.inflight = nil
	q.frames++
	return ran
}
