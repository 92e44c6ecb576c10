package metrics

import "github.com/san-kum/pondsim/internal/sim"

// TouchRate is the average number of input events delivered per tick.
type TouchRate struct {
	name    string
	sum     int
	samples int
}

func NewTouchRate() *TouchRate {
	return &TouchRate{
		name: "touch_rate",
	}
}

func (c *TouchRate) Name() string {
	return c.name
}

func (c *TouchRate) Observe(f sim.Frame) {
	c.sum += f.Events
	c.samples++
}

func (c *TouchRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *TouchRate) Reset() {
	c.sum = 0
	c.samples = 0
}
