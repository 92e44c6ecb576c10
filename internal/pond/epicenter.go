package pond

import "sort"

// Epicenter is the set of cells affected by a touch.
type Epicenter map[Coordinate]struct{}

// LocateEpicenter returns the side x side square whose top-left corner is
// anchor, clipped to the layout. Clipping near an edge shrinks the region;
// it is never an error.
func LocateEpicenter(l Layout, anchor Coordinate, side int) Epicenter {
	x0, x1 := clipSpan(anchor.X, side, l.Width)
	y0, y1 := clipSpan(anchor.Y, side, l.Height)
	e := make(Epicenter, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			e[Coordinate{X: x, Y: y}] = struct{}{}
		}
	}
	return e
}

// clipSpan intersects [start, start+side) with [0, limit) without computing
// start+side, so a huge side cannot overflow.
func clipSpan(start, side, limit int) (lo, hi int) {
	if side <= 0 || start >= limit {
		return 0, 0
	}
	if start < 0 {
		side += start
		start = 0
		if side <= 0 {
			return 0, 0
		}
	}
	if side > limit-start {
		side = limit - start
	}
	return start, start + side
}

func (e Epicenter) Contains(c Coordinate) bool {
	_, ok := e[c]
	return ok
}

func (e Epicenter) Len() int { return len(e) }

// Coordinates returns the members in row-major order.
func (e Epicenter) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, len(e))
	for c := range e {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
