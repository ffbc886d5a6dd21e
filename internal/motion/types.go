package motion

import (
	"math"
	"time"
)

const (
	DefaultMultiplier = 1.0
	DefaultFriction   = 0.92

	// StopThresholdFactor scales the multiplier into the settle speed.
	StopThresholdFactor = 0.3
	// ThrowThreshold is the release speed below which no deceleration runs.
	ThrowThreshold = 1.0

	BounceDeceleration = 0.04
	BounceAcceleration = 0.11
	ReboundAdjust      = 2.5

	// TrackingSpan is how far back the tracking window reaches.
	TrackingSpan = 100 * time.Millisecond
	// VelocityTimeConstant converts millisecond offsets into per-frame units.
	VelocityTimeConstant = 15.0
)

// Point is a 2-D position. The target the controller reports is a Point.
type Point struct {
	X, Y float64
}

func (p Point) Add(v Velocity) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Velocity is a per-frame displacement.
type Velocity struct {
	X, Y float64
}

func (v Velocity) Scale(f float64) Velocity {
	return Velocity{X: v.X * f, Y: v.Y * f}
}

// Exceeds reports whether either component is strictly faster than limit.
func (v Velocity) Exceeds(limit float64) bool {
	return math.Abs(v.X) > limit || math.Abs(v.Y) > limit
}

// Range is a closed interval on one axis.
type Range struct {
	Min, Max float64
}

func NewRange(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) IsValid() bool {
	return isFinite(r.Min) && isFinite(r.Max) && r.Min <= r.Max
}

// Bounds holds optional per-axis ranges. A nil axis is unbounded.
type Bounds struct {
	X, Y *Range
}

// Sample is one recorded pointer position.
type Sample struct {
	X, Y float64
	T    time.Time
}

// StopThreshold returns the settle speed for a multiplier.
func StopThreshold(multiplier float64) float64 {
	return StopThresholdFactor * multiplier
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
