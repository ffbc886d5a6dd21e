package motion

import "time"

// TrackingWindow keeps the pointer samples of the last TrackingSpan,
// ordered by insertion. It is reset at the start of every drag.
type TrackingWindow struct {
	samples []Sample
	span    time.Duration
}

func NewTrackingWindow() *TrackingWindow {
	return &TrackingWindow{
		samples: make([]Sample, 0, 16),
		span:    TrackingSpan,
	}
}

func (w *TrackingWindow) Reset() {
	w.samples = w.samples[:0]
}

// Add appends a sample and evicts from the front everything older than
// span relative to t. The new sample is always retained.
func (w *TrackingWindow) Add(x, y float64, t time.Time) {
	w.samples = append(w.samples, Sample{X: x, Y: y, T: t})

	drop := 0
	for drop < len(w.samples)-1 && t.Sub(w.samples[drop].T) > w.span {
		drop++
	}
	if drop > 0 {
		n := copy(w.samples, w.samples[drop:])
		w.samples = w.samples[:n]
	}
}

func (w *TrackingWindow) Len() int { return len(w.samples) }

// Samples returns a copy of the retained samples, oldest first.
func (w *TrackingWindow) Samples() []Sample {
	out := make([]Sample, len(w.samples))
	copy(out, w.samples)
	return out
}

// Velocity estimates the release velocity from the window endpoints.
// A window spanning zero time yields zero on both axes.
func (w *TrackingWindow) Velocity(multiplier float64) Velocity {
	if len(w.samples) < 2 {
		return Velocity{}
	}

	first := w.samples[0]
	last := w.samples[len(w.samples)-1]

	ms := float64(last.T.Sub(first.T)) / float64(time.Millisecond)
	d := ms / VelocityTimeConstant / multiplier

	return Velocity{
		X: safeDiv(last.X-first.X, d),
		Y: safeDiv(last.Y-first.Y, d),
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if !isFinite(v) {
		return 0
	}
	return v
}
