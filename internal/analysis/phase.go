package analysis

import (
	"strings"
)

// PhasePortrait2D pairs each level with its change over one sample.
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait builds the (x[i], x[i+1]-x[i]) portrait of a series.
func GeneratePhasePortrait(series []float64) *PhasePortrait2D {
	if len(series) < 2 {
		return nil
	}
	portrait := &PhasePortrait2D{
		Points: make([]struct{ X, Y float64 }, 0, len(series)-1),
	}
	for i := 0; i+1 < len(series); i++ {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: series[i],
			Y: series[i+1] - series[i],
		})
	}
	return portrait
}

// PhasePortraitToASCII plots the portrait on a width x height character grid
// with the zero-change axis drawn when visible.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := make([]float64, len(portrait.Points))
	ys := make([]float64, len(portrait.Points))
	for i, p := range portrait.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX := padRange(xs)
	minY, maxY := padRange(ys)

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/(maxY-minY)*float64(height-1))
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / (maxX - minX) * float64(width-1))
		row := height - 1 - int((p.Y-minY)/(maxY-minY)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the sample indices at which series rises through level.
func Crossings(series []float64, level float64) []int {
	var out []int
	for i := 1; i < len(series); i++ {
		if series[i-1] < level && series[i] >= level {
			out = append(out, i)
		}
	}
	return out
}

// padRange returns the extent of v widened by 10% on each side.
func padRange(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, hi + span*0.1
}
