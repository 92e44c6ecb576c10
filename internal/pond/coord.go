package pond

import (
	"fmt"
	"math"
)

// Coordinate addresses a grid cell. Equality is by value, so it can be used
// as a map key.
type Coordinate struct {
	X, Y int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Distance returns the Euclidean distance between two cells.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Layout maps between coordinates and row-major indices for a fixed
// width x height grid.
type Layout struct {
	Width, Height int
}

// Len is the number of cells, width*height.
func (l Layout) Len() int { return l.Width * l.Height }

func (l Layout) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Index returns x + y*width, or ErrOutOfBounds.
func (l Layout) Index(x, y int) (int, error) {
	if !l.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, l.Width, l.Height)
	}
	return x + y*l.Width, nil
}

// Coordinate is the inverse of Index.
func (l Layout) Coordinate(i int) (Coordinate, error) {
	if i < 0 || i >= l.Len() {
		return Coordinate{}, fmt.Errorf("%w: index %d of %d", ErrOutOfBounds, i, l.Len())
	}
	return Coordinate{X: i % l.Width, Y: i / l.Width}, nil
}
