package pond

// Droplet is the resting height of one cell, in [0,1].
type Droplet struct {
	Height float64
}

// Grid owns one Droplet per cell in row-major order.
type Grid struct {
	layout   Layout
	droplets []Droplet
}

// NewGrid allocates a width x height grid with every droplet at resting.
func NewGrid(width, height int, resting float64) *Grid {
	g := &Grid{
		layout:   Layout{Width: width, Height: height},
		droplets: make([]Droplet, width*height),
	}
	g.Fill(resting)
	return g
}

func (g *Grid) Layout() Layout { return g.layout }

// Fill sets every droplet to v.
func (g *Grid) Fill(v float64) {
	for i := range g.droplets {
		g.droplets[i].Height = v
	}
}

// At returns a copy of the droplet at c.
func (g *Grid) At(c Coordinate) (Droplet, error) {
	i, err := g.layout.Index(c.X, c.Y)
	if err != nil {
		return Droplet{}, err
	}
	return g.droplets[i], nil
}

// Set overwrites the droplet height at c.
func (g *Grid) Set(c Coordinate, v float64) error {
	i, err := g.layout.Index(c.X, c.Y)
	if err != nil {
		return err
	}
	g.droplets[i].Height = v
	return nil
}

// height is the unchecked hot-path accessor used by the compositor.
func (g *Grid) height(i int) float64 {
	return g.droplets[i].Height
}
