// Package pond provides the simulation kernel for a 2D field of water cells.
//
// The package defines the grid data model and the per-frame pipeline that
// turns touch input into a color buffer:
//
//   - [Layout]: bijection between grid coordinates and linear indices
//   - [Grid]: dense row-major storage of resting [Droplet] values
//   - [LocateEpicenter]: the set of cells affected by a touch
//   - [Ripple], [RippleSet]: decaying radial waves and their lifecycle
//   - [Processor]: Idle/Touching state machine over input events
//   - [Pond]: owns all of the above and implements [Program]
//
// # Frame Contract
//
// A host calls [Pond.Tick] with the frame's event batch and then
// [Pond.Render] with a buffer of exactly width*height pixels:
//
//	p, _ := pond.New(pond.DefaultConfig())
//	w, h := p.Dimensions()
//	buf := make([]pond.Pixel, w*h)
//	for {
//	    p.Tick(events)
//	    p.Render(buf)
//	}
//
// # Thread Safety
//
// A Pond has exactly one owner. Neither Tick nor Render blocks or starts
// goroutines, and no locking is performed. Hosts that run several ponds in
// parallel must give each pond its own goroutine.
package pond
