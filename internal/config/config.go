package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/impetus/internal/gesture"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/motion"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultMaxTicks   = 2000
	DefaultDurationMs = 80
	DefaultDistance   = 120.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Multiplier    float64       `yaml:"multiplier"`
	Friction      float64       `yaml:"friction"`
	Bounce        bool          `yaml:"bounce"`
	BoundX        []float64     `yaml:"bound_x,omitempty"`
	BoundY        []float64     `yaml:"bound_y,omitempty"`
	InitialValues []float64     `yaml:"initial_values,omitempty"`
	FPS           int           `yaml:"fps"`
	MaxTicks      int           `yaml:"max_ticks"`
	Gesture       GestureConfig `yaml:"gesture"`
}

// GestureConfig describes the scripted swipe used by headless runs.
type GestureConfig struct {
	From       []float64 `yaml:"from"`
	To         []float64 `yaml:"to"`
	DurationMs int       `yaml:"duration_ms"`
	HoldMs     int       `yaml:"hold_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Multiplier: motion.DefaultMultiplier,
		Friction:   motion.DefaultFriction,
		Bounce:     true,
		FPS:        DefaultFPS,
		MaxTicks:   DefaultMaxTicks,
		Gesture: GestureConfig{
			From:       []float64{0, 0},
			To:         []float64{DefaultDistance, 0},
			DurationMs: DefaultDurationMs,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Multiplier <= 0 {
		return fmt.Errorf("%w: multiplier %v", ErrInvalid, c.Multiplier)
	}
	if c.Friction <= 0 || c.Friction >= 1 {
		return fmt.Errorf("%w: friction %v not in (0,1)", ErrInvalid, c.Friction)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("%w: max_ticks %d", ErrInvalid, c.MaxTicks)
	}
	for name, r := range map[string][]float64{"bound_x": c.BoundX, "bound_y": c.BoundY} {
		if r == nil {
			continue
		}
		if len(r) != 2 || r[0] > r[1] {
			return fmt.Errorf("%w: %s must be [min, max], got %v", ErrInvalid, name, r)
		}
	}
	for name, p := range map[string][]float64{"initial_values": c.InitialValues, "gesture.from": c.Gesture.From, "gesture.to": c.Gesture.To} {
		if p != nil && len(p) != 2 {
			return fmt.Errorf("%w: %s must be [x, y], got %v", ErrInvalid, name, p)
		}
	}
	if c.Gesture.DurationMs < 0 || c.Gesture.HoldMs < 0 {
		return fmt.Errorf("%w: negative gesture timing", ErrInvalid)
	}
	return nil
}

// Options copies the motion settings onto base.
func (c *Config) Options(base impetus.Options) impetus.Options {
	base.Multiplier = c.Multiplier
	base.Friction = c.Friction
	base.NoBounce = !c.Bounce
	base.BoundX = toRange(c.BoundX)
	base.BoundY = toRange(c.BoundY)
	if p, ok := toPoint(c.InitialValues); ok {
		base.InitialValues = &p
	}
	return base
}

// Swipe builds the configured gesture.
func (c *Config) Swipe() gesture.Gesture {
	from, _ := toPoint(c.Gesture.From)
	to, _ := toPoint(c.Gesture.To)
	g := gesture.Swipe(from, to, time.Duration(c.Gesture.DurationMs)*time.Millisecond, c.FPS)
	return g.Hold(time.Duration(c.Gesture.HoldMs) * time.Millisecond)
}

func toRange(r []float64) *motion.Range {
	if len(r) != 2 {
		return nil
	}
	return motion.NewRange(r[0], r[1])
}

func toPoint(p []float64) (motion.Point, bool) {
	if len(p) != 2 {
		return motion.Point{}, false
	}
	return motion.Point{X: p[0], Y: p[1]}, true
}
