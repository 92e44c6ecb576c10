package pond

import (
	"fmt"
	"image/color"
)

// Pixel is an RGBA color with channels in [0,1].
type Pixel struct {
	R, G, B, A float32
}

// RGBA converts to an 8-bit color.
func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{R: to8(p.R), G: to8(p.G), B: to8(p.B), A: to8(p.A)}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Program is the frame contract between a host and a simulation. Dimensions
// is queried once; Tick and Render are then called alternately.
type Program interface {
	Dimensions() (width, height int)
	Tick(events []Event)
	Render(buf []Pixel)
}

// Pond is the simulation: resting grid, active ripples and touch state.
type Pond struct {
	cfg       Config
	grid      *Grid
	ripples   RippleSet
	input     Processor
	epicenter []int
	ticks     uint64
	spawned   uint64
}

var _ Program = (*Pond)(nil)

// New validates cfg and builds a pond at rest.
func New(cfg Config) (*Pond, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pond{
		cfg:  cfg,
		grid: NewGrid(cfg.Width, cfg.Height, cfg.DefaultValue),
	}
	layout := p.grid.Layout()
	for _, c := range LocateEpicenter(layout, cfg.Anchor, cfg.FingerWidth).Coordinates() {
		i, err := layout.Index(c.X, c.Y)
		if err != nil {
			return nil, fmt.Errorf("locating epicenter: %w", err)
		}
		p.epicenter = append(p.epicenter, i)
	}
	return p, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config) *Pond {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pond) Dimensions() (int, int) { return p.cfg.Width, p.cfg.Height }

func (p *Pond) Config() Config { return p.cfg }

func (p *Pond) Layout() Layout { return p.grid.Layout() }

// State is the current touch state.
func (p *Pond) State() TouchState { return p.input.State() }

// Ticks counts completed Tick calls.
func (p *Pond) Ticks() uint64 { return p.ticks }

// Spawned counts ripples created since construction or the last Reset.
func (p *Pond) Spawned() uint64 { return p.spawned }

// Ripples returns a copy of the active ripples.
func (p *Pond) Ripples() []Ripple { return p.ripples.All() }

// ActiveRipples is the number of active ripples.
func (p *Pond) ActiveRipples() int { return p.ripples.Len() }

// Droplet returns the resting droplet at c.
func (p *Pond) Droplet(c Coordinate) (Droplet, error) { return p.grid.At(c) }

// Epicenter returns the clipped touch region.
func (p *Pond) Epicenter() Epicenter {
	return LocateEpicenter(p.grid.Layout(), p.cfg.Anchor, p.cfg.FingerWidth)
}

// Tick applies events in order, then ages the ripples and retires the
// expired ones. An empty batch only ages the ripples.
func (p *Pond) Tick(events []Event) {
	for _, ev := range events {
		p.process(ev)
	}
	p.ripples.Advance(p.cfg.MaxAge)
	p.ticks++
}

func (p *Pond) process(ev Event) {
	tr, ok := p.input.Apply(ev)
	if !ok {
		return
	}
	switch p.cfg.Mode {
	case InstantSet:
		if tr.Entered() {
			p.fillEpicenter(p.cfg.TouchedValue)
		} else if tr.Left() {
			p.fillEpicenter(p.cfg.DefaultValue)
		}
	case PropagatingRipple:
		if tr.State == Pressed {
			p.ripples.Add(NewRipple(p.cfg.Anchor, p.cfg.FingerWidth))
			p.spawned++
		}
	}
}

func (p *Pond) fillEpicenter(v float64) {
	for _, i := range p.epicenter {
		p.grid.droplets[i].Height = v
	}
}

// Render writes one pixel per cell: the resting droplet plus every ripple's
// contribution, clamped to [0,1], in the blue channel. It panics with a
// *BufferSizeError if len(buf) != width*height. Render never mutates the pond.
func (p *Pond) Render(buf []Pixel) {
	layout := p.grid.Layout()
	if len(buf) != layout.Len() {
		panic(&BufferSizeError{Want: layout.Len(), Got: len(buf)})
	}
	ripples := p.ripples.ripples
	amps := make([]float64, len(ripples))
	for k, r := range ripples {
		amps[k] = r.amplitude()
	}
	i := 0
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			c := Coordinate{X: x, Y: y}
			total := p.grid.height(i)
			for k, r := range ripples {
				if r.Age == 0 {
					continue
				}
				d := c.Distance(r.Origin)
				if d == 0 {
					total += r.originHeight(p.cfg.Origin, p.cfg.TouchedValue)
					continue
				}
				total += amps[k] / d
			}
			buf[i] = Pixel{B: float32(clamp01(total)), A: 1}
			i++
		}
	}
}

// Level is the composited, clamped value at a single cell, equal to the blue
// channel Render would write there.
func (p *Pond) Level(c Coordinate) (float64, error) {
	i, err := p.grid.Layout().Index(c.X, c.Y)
	if err != nil {
		return 0, err
	}
	total := p.grid.height(i)
	for _, r := range p.ripples.ripples {
		d := c.Distance(r.Origin)
		if h, ok := r.Height(d); ok {
			total += h
		} else {
			total += r.originHeight(p.cfg.Origin, p.cfg.TouchedValue)
		}
	}
	return clamp01(total), nil
}

// Reset restores the resting grid, clears ripples and returns to Idle. The
// configuration is unchanged.
func (p *Pond) Reset() {
	p.grid.Fill(p.cfg.DefaultValue)
	p.ripples.Reset()
	p.input.Reset()
	p.ticks = 0
	p.spawned = 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
