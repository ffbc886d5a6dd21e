package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/gesture"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/metrics"
	"github.com/san-kum/impetus/internal/motion"
	"go.uber.org/zap"
)

// MetricSet builds fresh metrics for one run.
type MetricSet func(b motion.Bounds) []metrics.Metric

type Simulator struct {
	metrics MetricSet
	extra   []func() metrics.Metric
	log     *zap.Logger
}

func New(log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{metrics: metrics.Defaults, log: log}
}

// WithMetrics replaces the default metric set.
func (s *Simulator) WithMetrics(set MetricSet) *Simulator {
	s.metrics = set
	return s
}

// AddMetric registers an extra metric; fn is called once per run so
// concurrent runs never share state.
func (s *Simulator) AddMetric(fn func() metrics.Metric) { s.extra = append(s.extra, fn) }

func (s *Simulator) newMetrics(b motion.Bounds) []metrics.Metric {
	var ms []metrics.Metric
	if s.metrics != nil {
		ms = s.metrics(b)
	}
	for _, fn := range s.extra {
		ms = append(ms, fn())
	}
	return ms
}

// Run plays cfg.Gesture against a fresh controller on a fake clock and
// records every update until the motion settles or MaxTicks frames have
// run.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	clock := frame.NewFakeClock(Epoch)
	queue := frame.NewQueue(clock)
	surface := input.NewSurface()

	result := &Result{Metrics: make(map[string]float64)}
	ms := s.newMetrics(motion.Bounds{X: cfg.Options.BoundX, Y: cfg.Options.BoundY})
	for _, m := range ms {
		m.Reset()
	}

	var c *impetus.Controller
	opts := cfg.Options
	opts.Surface, opts.Source, opts.Selector = surface, nil, ""
	opts.Scheduler, opts.Clock = queue, clock
	if opts.Logger == nil {
		opts.Logger = s.log
	}

	opts.OnUpdate = chain(opts.OnUpdate, func(x, y float64) {
		f := Frame{
			Tick:  queue.Frames(),
			Time:  clock.Now().Sub(Epoch),
			Phase: phase(c),
			X:     x,
			Y:     y,
		}
		result.Frames = append(result.Frames, f)
		for _, m := range ms {
			m.Observe(f.Point(), f.Tick)
		}
	})
	record := func(name string) impetus.Callback {
		return func(x, y float64) {
			result.Events = append(result.Events, Event{Tick: queue.Frames(), Name: name, X: x, Y: y})
		}
	}
	opts.OnStart = chain(opts.OnStart, record(EventStart))
	opts.OnStartDecelerating = chain(opts.OnStartDecelerating, record(EventStartDecelerating))
	opts.OnEndDecelerating = chain(opts.OnEndDecelerating, record(EventEndDecelerating))

	c, err := impetus.New(opts)
	if err != nil {
		return nil, err
	}
	defer c.Destroy()

	player := gesture.NewPlayer(surface, queue, clock, cfg.FPS)
	ticks, err := player.Play(ctx, cfg.Gesture, cfg.MaxTicks)

	result.Ticks = ticks
	result.Settled = c.State() == impetus.Idle && queue.Pending() == 0
	result.Final.X, result.Final.Y = c.Values()
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run finished",
		zap.Int("ticks", ticks),
		zap.Int("frames", len(result.Frames)),
		zap.Bool("settled", result.Settled),
	)
	return result, err
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, cfg.FPS)
	}
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("%w: max ticks must be positive, got %d", ErrInvalidConfig, cfg.MaxTicks)
	}
	if len(cfg.Gesture.Steps) == 0 {
		return fmt.Errorf("%w: empty gesture", ErrInvalidConfig)
	}
	return nil
}

func phase(c *impetus.Controller) string {
	if c == nil {
		return PhaseInit
	}
	return c.State().String()
}

// chain calls user after own so recorded state is current when user runs.
func chain(user, own impetus.Callback) impetus.Callback {
	if user == nil {
		return own
	}
	return func(x, y float64) {
		own(x, y)
		user(x, y)
	}
}
