package metrics

import (
	"github.com/san-kum/impetus/internal/motion"
)

// Travel is the length of the path the target covered.
type Travel struct {
	name  string
	last  motion.Point
	seen  bool
	total float64
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (t *Travel) Name() string { return t.name }

func (t *Travel) Observe(p motion.Point, tick int) {
	if t.seen {
		t.total += p.Sub(t.last).Norm()
	}
	t.last = p
	t.seen = true
}

func (t *Travel) Value() float64 { return t.total }

func (t *Travel) Reset() {
	t.total = 0
	t.seen = false
}

// MeanSpeed is the average displacement per observed frame.
type MeanSpeed struct {
	name    string
	last    motion.Point
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(p motion.Point, tick int) {
	if m.samples > 0 {
		m.sum += p.Sub(m.last).Norm()
	}
	m.last = p
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples < 2 {
		return 0
	}
	return m.sum / float64(m.samples-1)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// SettleTicks is the last tick at which the target was reported.
type SettleTicks struct {
	name string
	last int
}

func NewSettleTicks() *SettleTicks {
	return &SettleTicks{name: "settle_ticks"}
}

func (s *SettleTicks) Name() string { return s.name }

func (s *SettleTicks) Observe(p motion.Point, tick int) {
	if tick > s.last {
		s.last = tick
	}
}

func (s *SettleTicks) Value() float64 { return float64(s.last) }

func (s *SettleTicks) Reset() { s.last = 0 }
