package gesture

import (
	"context"
	"time"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/input"
)

// Player feeds gestures into a surface and runs frames on a fake clock.
type Player struct {
	surface  *input.Surface
	queue    *frame.Queue
	clock    *frame.FakeClock
	interval time.Duration
}

func NewPlayer(surface *input.Surface, queue *frame.Queue, clock *frame.FakeClock, fps int) *Player {
	return &Player{
		surface:  surface,
		queue:    queue,
		clock:    clock,
		interval: frame.Interval(fps),
	}
}

// Play dispatches every step at its scheduled time, flushing the queue on
// each frame boundary, and keeps running frames after the gesture ends
// until nothing is pending or maxFrames is reached. It returns the number
// of frames run.
func (p *Player) Play(ctx context.Context, g Gesture, maxFrames int) (int, error) {
	start := p.clock.Now()
	steps := g.Sorted()

	next := 0
	frames := 0
	for frames < maxFrames {
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		default:
		}

		boundary := start.Add(time.Duration(frames+1) * p.interval)
		for next < len(steps) && !start.Add(steps[next].At).After(boundary) {
			p.clock.Set(start.Add(steps[next].At))
			p.surface.Dispatch(g.Event(steps[next]))
			next++
		}

		p.clock.Set(boundary)
		p.queue.Flush()
		frames++

		if next == len(steps) && p.queue.Pending() == 0 {
			break
		}
	}
	return frames, nil
}
