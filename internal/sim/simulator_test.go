package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/impetus/internal/gesture"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/metrics"
	"github.com/san-kum/impetus/internal/motion"
)

func throwConfig(mutate func(*impetus.Options)) Config {
	opts := impetus.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	return Config{
		Options:  opts,
		Gesture:  gesture.Swipe(motion.Point{}, motion.Point{X: 120}, 80*time.Millisecond, 60),
		FPS:      60,
		MaxTicks: 2000,
	}
}

func eventNames(r *Result) []string {
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Name
	}
	return names
}

func TestSimulatorThrow(t *testing.T) {
	result, err := New(nil).Run(context.Background(), throwConfig(nil))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Settled {
		t.Errorf("expected run to settle within %d ticks", 2000)
	}
	if len(result.Phase("dragging")) == 0 {
		t.Error("expected drag frames")
	}
	if len(result.Phase("decelerating")) == 0 {
		t.Error("expected deceleration frames")
	}
	if result.Final.X <= 120 {
		t.Errorf("expected inertia to carry past 120, got %.2f", result.Final.X)
	}
	if result.Final.Y != 0 {
		t.Errorf("expected y to stay 0, got %.2f", result.Final.Y)
	}

	want := []string{EventStart, EventStartDecelerating, EventEndDecelerating}
	got := eventNames(result)
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	last := result.Frames[len(result.Frames)-1]
	if last.X != result.Final.X {
		t.Errorf("last frame %.4f does not match final %.4f", last.X, result.Final.X)
	}
	if result.Metrics["travel"] < result.Final.X-1e-9 {
		t.Errorf("travel %.2f shorter than displacement %.2f", result.Metrics["travel"], result.Final.X)
	}
}

func TestSimulatorFramesMonotonic(t *testing.T) {
	result, err := New(nil).Run(context.Background(), throwConfig(nil))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := 1; i < len(result.Frames); i++ {
		if result.Frames[i].Tick < result.Frames[i-1].Tick {
			t.Fatalf("frame %d tick went backwards", i)
		}
		if result.Frames[i].Time < result.Frames[i-1].Time {
			t.Fatalf("frame %d time went backwards", i)
		}
	}
}

func TestSimulatorWallContainment(t *testing.T) {
	cfg := throwConfig(func(o *impetus.Options) {
		o.NoBounce = true
		o.BoundX = motion.NewRange(0, 100)
	})

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, f := range result.Frames {
		if f.X < 0 || f.X > 100 {
			t.Errorf("frame %d: x=%.4f outside [0,100]", i, f.X)
		}
	}
	if result.Final.X != 100 {
		t.Errorf("expected to rest at 100, got %.4f", result.Final.X)
	}
	if result.Metrics["containment"] != 1 {
		t.Errorf("expected containment 1, got %.4f", result.Metrics["containment"])
	}
	if result.Metrics["overshoot"] != 0 {
		t.Errorf("expected no overshoot, got %.4f", result.Metrics["overshoot"])
	}
}

func TestSimulatorBounceReturns(t *testing.T) {
	cfg := throwConfig(func(o *impetus.Options) {
		o.BoundX = motion.NewRange(0, 100)
	})

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Settled {
		t.Fatal("expected bounce to settle")
	}
	if result.Metrics["overshoot"] <= 0 {
		t.Error("expected the throw to overshoot the bound")
	}
	if math.Abs(result.Final.X-100) > 1 {
		t.Errorf("expected to come back near 100, got %.4f", result.Final.X)
	}
}

func TestSimulatorTap(t *testing.T) {
	cfg := throwConfig(nil)
	cfg.Gesture = gesture.Tap(motion.Point{X: 5, Y: 5}, 50*time.Millisecond)

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 0 {
		t.Errorf("expected no updates for a tap, got %d", len(result.Frames))
	}
	if !result.Settled {
		t.Error("expected tap to leave controller idle")
	}
	if got := eventNames(result); len(got) != 3 || got[2] != EventEndDecelerating {
		t.Errorf("unexpected events %v", got)
	}
}

func TestSimulatorInitialValues(t *testing.T) {
	cfg := throwConfig(func(o *impetus.Options) {
		o.InitialValues = &motion.Point{X: 10, Y: 20}
	})

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	first := result.Frames[0]
	if first.Phase != PhaseInit {
		t.Errorf("expected first phase %q, got %q", PhaseInit, first.Phase)
	}
	if first.X != 10 || first.Y != 20 {
		t.Errorf("expected (10,20), got (%.2f,%.2f)", first.X, first.Y)
	}
	if len(result.Phase(PhaseInit)) != 1 {
		t.Errorf("expected exactly one init update, got %d", len(result.Phase(PhaseInit)))
	}
}

func TestSimulatorMaxTicks(t *testing.T) {
	cfg := throwConfig(nil)
	cfg.MaxTicks = 8

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Ticks != 8 {
		t.Errorf("expected 8 ticks, got %d", result.Ticks)
	}
	if result.Settled {
		t.Error("expected run to stop before settling")
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(nil).Run(ctx, throwConfig(nil))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected partial result with 0 ticks, got %+v", result)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(nil)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative max ticks", func(c *Config) { c.MaxTicks = -1 }},
		{"empty gesture", func(c *Config) { c.Gesture = gesture.Gesture{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := throwConfig(nil)
			tt.mutate(&cfg)
			if _, err := sim.Run(context.Background(), cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorControllerError(t *testing.T) {
	cfg := throwConfig(func(o *impetus.Options) { o.Friction = 1.5 })
	if _, err := New(nil).Run(context.Background(), cfg); !errors.Is(err, impetus.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestSimulatorUserCallbacks(t *testing.T) {
	var updates, ends int
	cfg := throwConfig(func(o *impetus.Options) {
		o.OnUpdate = func(x, y float64) { updates++ }
		o.OnEndDecelerating = func(x, y float64) { ends++ }
	})

	result, err := New(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if updates != len(result.Frames) {
		t.Errorf("user saw %d updates, recorded %d", updates, len(result.Frames))
	}
	if ends != 1 {
		t.Errorf("expected 1 end notification, got %d", ends)
	}
}

func TestSimulatorMetricSet(t *testing.T) {
	sim := New(nil).WithMetrics(func(motion.Bounds) []metrics.Metric {
		return []metrics.Metric{metrics.NewTravel()}
	})
	sim.AddMetric(func() metrics.Metric { return metrics.NewSettleTicks() })

	result, err := sim.Run(context.Background(), throwConfig(nil))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Metrics) != 2 {
		t.Errorf("expected 2 metrics, got %v", result.Metrics)
	}
	if _, ok := result.Metrics["settle_ticks"]; !ok {
		t.Error("missing settle_ticks")
	}
}

func TestRunAllMatchesSequential(t *testing.T) {
	sim := New(nil)
	cfgs := []Config{
		throwConfig(nil),
		throwConfig(func(o *impetus.Options) { o.Friction = 0.8 }),
		throwConfig(func(o *impetus.Options) { o.Multiplier = 2 }),
	}

	results, err := sim.RunAll(context.Background(), cfgs)
	if err != nil {
		t.Fatalf("run all failed: %v", err)
	}
	if len(results) != len(cfgs) {
		t.Fatalf("expected %d results, got %d", len(cfgs), len(results))
	}

	for i, cfg := range cfgs {
		want, err := sim.Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if results[i].Final != want.Final || len(results[i].Frames) != len(want.Frames) {
			t.Errorf("run %d differs: parallel %+v, sequential %+v", i, results[i].Final, want.Final)
		}
	}
}

func TestRunRealtime(t *testing.T) {
	cfg := throwConfig(func(o *impetus.Options) { o.Friction = 0.5 })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var frames []Frame
	err := New(nil).RunRealtime(ctx, cfg, func(f Frame) { frames = append(frames, f) })
	if err != nil {
		t.Fatalf("realtime run failed: %v", err)
	}
	if len(frames) == 0 {
		t.Fatal("expected updates")
	}
	if frames[len(frames)-1].X <= 0 {
		t.Errorf("expected target to move right, got %.2f", frames[len(frames)-1].X)
	}
}
