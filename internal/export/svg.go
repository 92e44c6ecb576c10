package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pondsim/internal/pond"
)

// FrameToSVG renders a frame as a heatmap of cell x cell rectangles, one per
// step x step block of pixels.
func FrameToSVG(pixels []pond.Pixel, width, height, step int, cell float64) string {
	if len(pixels) != width*height || width == 0 || height == 0 {
		return ""
	}
	if step < 1 {
		step = 1
	}
	cols := (width + step - 1) / step
	rows := (height + step - 1) / step
	w := float64(cols) * cell
	h := float64(rows) * cell

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="#000000"/>
`, w, h, w, h))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			px := pixels[col*step+row*step*width]
			c := px.RGBA()
			if c.B == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(col)*cell, float64(row)*cell, cell, cell, c.R, c.G, c.B))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws a line chart of series, for probe or mean-level plots.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(series)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
