package motion

// Overflow is the signed distance from a point back into its bounds.
// A positive component means the point is below Min, negative above Max.
type Overflow struct {
	X, Y     float64
	InBounds bool
}

// Evaluate measures p against b.
func Evaluate(p Point, b Bounds) Overflow {
	o := Overflow{
		X: axisOverflow(p.X, b.X),
		Y: axisOverflow(p.Y, b.Y),
	}
	o.InBounds = o.X == 0 && o.Y == 0
	return o
}

func axisOverflow(v float64, r *Range) float64 {
	if r == nil {
		return 0
	}
	if v < r.Min {
		return r.Min - v
	}
	if v > r.Max {
		return r.Max - v
	}
	return 0
}

// Clamp moves every overflowing axis of p onto the bound it violated.
func Clamp(p Point, b Bounds, o Overflow) Point {
	if o.X != 0 && b.X != nil {
		p.X = pick(o.X, b.X)
	}
	if o.Y != 0 && b.Y != nil {
		p.Y = pick(o.Y, b.Y)
	}
	return p
}

func pick(diff float64, r *Range) float64 {
	if diff > 0 {
		return r.Min
	}
	return r.Max
}

// DragDamping returns the share of a drag delta that is taken back when
// the target is dragged past a bound, starting near 0.55.
func DragDamping(overflow float64) float64 {
	return 0.000005*overflow*overflow + 0.0001*overflow + 0.55
}
