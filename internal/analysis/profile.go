package analysis

import (
	"math"

	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

// RadialProfile averages the frame level over rings of unit width around
// center. Bin r holds cells with distance in [r, r+1); bins with no cells
// are NaN.
func RadialProfile(f sim.Frame, center pond.Coordinate, maxRadius int) []float64 {
	if maxRadius <= 0 {
		return nil
	}
	sums := make([]float64, maxRadius)
	counts := make([]int, maxRadius)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := pond.Coordinate{X: x, Y: y}
			r := int(c.Distance(center))
			if r >= maxRadius {
				continue
			}
			sums[r] += float64(f.Pixels[x+y*f.Width].B)
			counts[r]++
		}
	}
	for r := range sums {
		if counts[r] == 0 {
			sums[r] = math.NaN()
			continue
		}
		sums[r] /= float64(counts[r])
	}
	return sums
}
