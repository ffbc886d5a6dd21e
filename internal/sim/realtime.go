package sim

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/input"
	"go.uber.org/zap"
)

// RunRealtime plays cfg.Gesture on the wall clock through a frame.Loop and
// hands every update to fn as it happens. It returns once the motion
// settles after the gesture, MaxTicks frames have run, or ctx is done.
// fn runs on the loop goroutine.
func (s *Simulator) RunRealtime(ctx context.Context, cfg Config, fn func(Frame)) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	loop := frame.NewLoop(cfg.FPS)
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	surface := input.NewSurface()
	start := time.Now()
	released := false

	var c *impetus.Controller
	opts := cfg.Options
	opts.Surface, opts.Source, opts.Selector = surface, nil, ""
	opts.Scheduler, opts.Clock = loop, frame.SystemClock{}
	if opts.Logger == nil {
		opts.Logger = s.log
	}
	opts.OnUpdate = chain(opts.OnUpdate, func(x, y float64) {
		if fn != nil {
			fn(Frame{Tick: loop.Frames(), Time: time.Since(start), Phase: phase(c), X: x, Y: y})
		}
		if loop.Frames() >= cfg.MaxTicks {
			stop()
		}
	})
	opts.OnEndDecelerating = chain(opts.OnEndDecelerating, func(float64, float64) {
		if released {
			stop()
		}
	})

	c, err := impetus.New(opts)
	if err != nil {
		return err
	}

	steps := cfg.Gesture.Sorted()
	go func() {
		for i, st := range steps {
			timer := time.NewTimer(time.Until(start.Add(st.At)))
			select {
			case <-runCtx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			ev := cfg.Gesture.Event(st)
			last := i == len(steps)-1
			ok := loop.Post(func() {
				if last {
					released = true
				}
				surface.Dispatch(ev)
				if last && c.State() == impetus.Idle {
					stop()
				}
			})
			if !ok {
				return
			}
		}
	}()

	err = loop.Run(runCtx)
	c.Destroy()

	s.log.Debug("realtime run finished", zap.Int("frames", loop.Frames()), zap.Duration("elapsed", time.Since(start)))
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return nil
	}
	return err
}
