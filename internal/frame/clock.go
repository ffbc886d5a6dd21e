package frame

import "time"

// FakeClock is a manually advanced Clock.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time { return c.now }

func (c *FakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set moves the clock to t. Moving backwards is ignored.
func (c *FakeClock) Set(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}
