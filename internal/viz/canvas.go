package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pondsim/internal/pond"
)

// upperHalf draws the top sub-pixel in the foreground and the bottom one in
// the background, giving two vertical samples per character cell.
const upperHalf = '▀'

// levelSteps quantizes levels so cell styles can be cached.
const levelSteps = 32

// Canvas is a half-block view of a frame: Cols x Rows character cells
// covering Cols x 2*Rows samples.
type Canvas struct {
	Cols, Rows int
	levels     []float64
	styles     map[[2]int]lipgloss.Style
	theme      string
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.Cols, c.Rows = cols, rows
	c.levels = make([]float64, cols*rows*2)
}

// Level is the sample at sub-pixel (x, y), with y in [0, 2*Rows).
func (c *Canvas) Level(x, y int) float64 {
	if x < 0 || y < 0 || x >= c.Cols || y >= 2*c.Rows {
		return 0
	}
	return c.levels[x+y*c.Cols]
}

// Sample box-filters a width x height frame onto the canvas.
func (c *Canvas) Sample(pixels []pond.Pixel, width, height int) {
	if len(pixels) != width*height || width == 0 || height == 0 {
		return
	}
	sh := 2 * c.Rows
	for sy := 0; sy < sh; sy++ {
		y0, y1 := span(sy, sh, height)
		for sx := 0; sx < c.Cols; sx++ {
			x0, x1 := span(sx, c.Cols, width)
			sum := 0.0
			for y := y0; y < y1; y++ {
				row := pixels[y*width : (y+1)*width]
				for x := x0; x < x1; x++ {
					sum += float64(row[x].B)
				}
			}
			c.levels[sx+sy*c.Cols] = sum / float64((x1-x0)*(y1-y0))
		}
	}
}

// span maps cell i of n onto a non-empty range of size pixels.
func span(i, n, size int) (int, int) {
	lo := i * size / n
	hi := (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		lo, hi = size-1, size
	}
	return lo, hi
}

// Render draws the canvas in the colours of t.
func (c *Canvas) Render(t Theme) string {
	if c.styles == nil || c.theme != t.Name {
		c.styles = make(map[[2]int]lipgloss.Style)
		c.theme = t.Name
	}
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			key := [2]int{quantize(c.Level(col, 2*row)), quantize(c.Level(col, 2*row+1))}
			style, ok := c.styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(t.Water(float64(key[0]) / (levelSteps - 1))).
					Background(t.Water(float64(key[1]) / (levelSteps - 1)))
				c.styles[key] = style
			}
			b.WriteString(style.Render(string(upperHalf)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String draws the canvas with ASCII shading and no colour.
func (c *Canvas) String() string {
	const ramp = " .:-=+*#%@"
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			v := (c.Level(col, 2*row) + c.Level(col, 2*row+1)) / 2
			b.WriteByte(ramp[quantizeTo(v, len(ramp))])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func quantize(v float64) int { return quantizeTo(v, levelSteps) }

func quantizeTo(v float64, n int) int {
	i := int(v*float64(n-1) + 0.5)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
