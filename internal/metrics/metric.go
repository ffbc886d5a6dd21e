package metrics

import "github.com/san-kum/impetus/internal/motion"

// Metric accumulates a scalar over the target positions of a run.
type Metric interface {
	Name() string
	Observe(p motion.Point, tick int)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every headless run.
func Defaults(b motion.Bounds) []Metric {
	return []Metric{
		NewTravel(),
		NewMeanSpeed(),
		NewSettleTicks(),
		NewOvershoot(b),
		NewContainment(b),
	}
}
