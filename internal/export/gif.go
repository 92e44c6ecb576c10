package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

const paletteSize = 64

var ErrNoFrames = errors.New("export: no frames recorded")

// BluePalette is black through pure blue in paletteSize steps.
var BluePalette = func() color.Palette {
	p := make(color.Palette, paletteSize)
	for i := range p {
		p[i] = color.RGBA{B: uint8(i * 255 / (paletteSize - 1)), A: 255}
	}
	return p
}()

// GIFRecorder accumulates downsampled frames for an animated GIF.
type GIFRecorder struct {
	width, height int
	step          int
	delay         int
	frames        []*image.Paletted
	err           error
}

// NewGIFRecorder records frames of width x height, keeping every step-th
// pixel in each direction. delay is in hundredths of a second.
func NewGIFRecorder(width, height, step, delay int) *GIFRecorder {
	if step < 1 {
		step = 1
	}
	return &GIFRecorder{width: width, height: height, step: step, delay: delay}
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() {
	g.frames = g.frames[:0]
	g.err = nil
}

// Err is the first error met while recording through OnFrame.
func (g *GIFRecorder) Err() error { return g.err }

func (g *GIFRecorder) Add(pixels []pond.Pixel) error {
	if len(pixels) != g.width*g.height {
		return &pond.BufferSizeError{Want: g.width * g.height, Got: len(pixels)}
	}
	w := (g.width + g.step - 1) / g.step
	h := (g.height + g.step - 1) / g.step
	img := image.NewPaletted(image.Rect(0, 0, w, h), BluePalette)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b := pixels[x*g.step+y*g.step*g.width].B
			img.SetColorIndex(x, y, levelIndex(b))
		}
	}
	g.frames = append(g.frames, img)
	return nil
}

// OnFrame records every frame of a simulation; it implements sim.Observer.
// The first failure is kept and reported by Encode.
func (g *GIFRecorder) OnFrame(f sim.Frame) {
	if err := g.Add(f.Pixels); err != nil && g.err == nil {
		g.err = fmt.Errorf("recording tick %d: %w", f.Tick, err)
	}
}

func (g *GIFRecorder) Encode(w io.Writer) error {
	if g.err != nil {
		return g.err
	}
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func levelIndex(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return paletteSize - 1
	}
	return uint8(v*(paletteSize-1) + 0.5)
}
