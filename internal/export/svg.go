package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/impetus/internal/motion"
	"github.com/san-kum/impetus/internal/sim"
)

var phaseColors = map[string]string{
	sim.PhaseInit:  "#00ccff",
	"dragging":     "#00ff88",
	"decelerating": "#ffcc00",
}

const boundColor = "#444466"

// TraceSVG draws the target path scaled into a width x height picture,
// one stroke color per phase. Y grows downward as it does on screen.
// Bounded axes are drawn as dashed guide lines. It returns "" when there
// are fewer than two frames.
func TraceSVG(frames []sim.Frame, b motion.Bounds, width, height int) string {
	if len(frames) < 2 {
		return ""
	}

	minX, maxX := frames[0].X, frames[0].X
	minY, maxY := frames[0].Y, frames[0].Y
	for _, f := range frames {
		minX, maxX = min(minX, f.X), max(maxX, f.X)
		minY, maxY = min(minY, f.Y), max(maxY, f.Y)
	}
	if b.X != nil {
		minX, maxX = min(minX, b.X.Min), max(maxX, b.X.Max)
	}
	if b.Y != nil {
		minY, maxY = min(minY, b.Y.Min), max(maxY, b.Y.Max)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	sx := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	sy := func(y float64) float64 { return (y - minY) / rangeY * float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if b.X != nil {
		for _, x := range []float64{b.X.Min, b.X.Max} {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="4 4"/>
`, sx(x), sx(x), height, boundColor)
		}
	}
	if b.Y != nil {
		for _, y := range []float64{b.Y.Min, b.Y.Max} {
			fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>
`, sy(y), width, sy(y), boundColor)
		}
	}

	// each phase run starts where the previous one ended so the path has
	// no gaps
	start := 0
	for start < len(frames)-1 {
		end := start + 1
		for end < len(frames)-1 && frames[end+1].Phase == frames[start+1].Phase {
			end++
		}
		color, ok := phaseColors[frames[start+1].Phase]
		if !ok {
			color = "#ffffff"
		}

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, color, sx(frames[start].X), sy(frames[start].Y))
		for _, f := range frames[start+1 : end+1] {
			fmt.Fprintf(&sb, " L%.1f,%.1f", sx(f.X), sy(f.Y))
		}
		sb.WriteString("\"/>\n")
		start = end
	}

	last := frames[len(frames)-1]
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="#ffffff"/>
</svg>`, sx(last.X), sy(last.Y))
	return sb.String()
}
