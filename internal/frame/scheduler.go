package frame

import (
	"sync"
	"time"
)

const DefaultFPS = 60

// Handle identifies a requested frame callback. The zero Handle is never
// issued.
type Handle uint64

type Callback func(now time.Time)

type Scheduler interface {
	// Request runs cb before the next frame.
	Request(cb Callback) Handle
	// Cancel drops a pending callback. Unknown or spent handles are ignored.
	Cancel(h Handle)
}

// Clock supplies timestamps for pointer samples and frames.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

var (
	defaultOnce sync.Once
	defaultLoop *Loop
)

// Default returns the process-wide frame loop, created on first use at
// DefaultFPS. It does nothing until someone calls Run on it.
func Default() *Loop {
	defaultOnce.Do(func() {
		defaultLoop = NewLoop(DefaultFPS)
	})
	return defaultLoop
}

// Interval converts a frame rate into a frame period.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
