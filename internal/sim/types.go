package sim

import (
	"time"

	"github.com/san-kum/pondsim/internal/pond"
)

// Frame is one rendered tick. Pixels is owned by the simulator and is only
// valid for the duration of the OnFrame/Observe call.
type Frame struct {
	Tick    int
	Width   int
	Height  int
	Pixels  []pond.Pixel
	Ripples int
	Events  int
}

// Level returns the blue channel at c, or 0 outside the frame.
func (f Frame) Level(c pond.Coordinate) float64 {
	if c.X < 0 || c.Y < 0 || c.X >= f.Width || c.Y >= f.Height {
		return 0
	}
	return float64(f.Pixels[c.X+c.Y*f.Width].B)
}

// Mean is the average blue level over the frame.
func (f Frame) Mean() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range f.Pixels {
		sum += float64(p.B)
	}
	return sum / float64(len(f.Pixels))
}

// Peak is the maximum blue level over the frame.
func (f Frame) Peak() float64 {
	peak := 0.0
	for _, p := range f.Pixels {
		if v := float64(p.B); v > peak {
			peak = v
		}
	}
	return peak
}

// Script yields the events delivered to the program before a given tick.
// Ticks are numbered from zero.
type Script interface {
	Events(tick int) []pond.Event
}

type ScriptFunc func(tick int) []pond.Event

func (f ScriptFunc) Events(tick int) []pond.Event { return f(tick) }

// Idle is a script that never touches the pond.
var Idle Script = ScriptFunc(func(int) []pond.Event { return nil })

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// rippleCounter is implemented by programs that expose their ripple count.
type rippleCounter interface {
	ActiveRipples() int
}

type Config struct {
	Ticks       int
	SampleEvery int
	Probe       pond.Coordinate
	Seed        int64
}

// Sample is a per-tick summary recorded every Config.SampleEvery ticks.
type Sample struct {
	Tick    int     `csv:"tick" json:"tick"`
	Mean    float64 `csv:"mean" json:"mean"`
	Peak    float64 `csv:"peak" json:"peak"`
	Probe   float64 `csv:"probe" json:"probe"`
	Ripples int     `csv:"ripples" json:"ripples"`
	Events  int     `csv:"events" json:"events"`
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Ticks   int
	Events  int
	Elapsed time.Duration
}

// ProbeSeries extracts the probe column of the samples.
func (r *Result) ProbeSeries() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Probe
	}
	return out
}

// MeanSeries extracts the mean column of the samples.
func (r *Result) MeanSeries() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Mean
	}
	return out
}
