package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/pondsim/internal/sim"
	"github.com/san-kum/pondsim/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints an ASCII-shaded thumbnail of the pond while a headless
// run is in progress. It implements sim.Observer.
type LiveRenderer struct {
	title     string
	frameRate int
	every     int
	clear     bool
	lastFrame time.Time
	canvas    *viz.Canvas
	out       io.Writer
}

// NewLiveRenderer draws at most frameRate frames per second and only on
// ticks that are multiples of every. A frameRate of zero disables throttling.
func NewLiveRenderer(title string, frameRate, every, cols, rows int) *LiveRenderer {
	if every < 1 {
		every = 1
	}
	return &LiveRenderer{
		title:     title,
		frameRate: frameRate,
		every:     every,
		clear:     true,
		canvas:    viz.NewCanvas(cols, rows),
		out:       os.Stdout,
	}
}

// SetOutput redirects drawing; clearing escape codes are only written when
// out is the terminal.
func (r *LiveRenderer) SetOutput(out io.Writer, clear bool) {
	r.out = out
	r.clear = clear
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	if f.Tick%r.every != 0 {
		return
	}
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.canvas.Sample(f.Pixels, f.Width, f.Height)
	r.render(f)
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(fmt.Sprintf("  %s  tick=%d  ripples=%d\n", r.title, f.Tick, f.Ripples))
	b.WriteString("  " + strings.Repeat("-", r.canvas.Cols) + "\n")

	for _, row := range strings.Split(strings.TrimRight(r.canvas.String(), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.canvas.Cols) + "\n")
	b.WriteString(fmt.Sprintf("  mean=%.3f peak=%.3f\n", f.Mean(), f.Peak()))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if r.clear {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.clear {
		fmt.Fprint(r.out, showCursor)
	}
}
