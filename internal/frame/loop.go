package frame

import (
	"context"
	"time"
)

// Loop runs a Queue at a fixed frame rate on the goroutine that calls Run.
// Work posted from other goroutines is executed on that same goroutine, so
// frame callbacks and input handlers never run concurrently.
type Loop struct {
	*Queue
	interval time.Duration
	posts    chan func()
	done     chan struct{}
}

func NewLoop(fps int) *Loop {
	return &Loop{
		Queue:    NewQueue(SystemClock{}),
		interval: Interval(fps),
		posts:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func (l *Loop) Interval() time.Duration { return l.interval }

// Post queues fn to run on the loop goroutine. It reports false once the
// loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.posts <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run dispatches posted work and frames until ctx is done. A Loop can only
// be run once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			if l.Pending() > 0 {
				l.Flush()
			}
		}
	}
}
