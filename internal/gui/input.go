package gui

import (
	"image/color"

	"github.com/san-kum/pondsim/internal/pond"
)

// Input is one frame's polled input. Keeping it a plain struct lets the
// translation to pond events run without a window.
type Input struct {
	Action bool // left mouse button or space held

	BackPressed bool
	Dirs        [4]dirKey // left, right, up, down

	Chars []rune
}

type dirKey struct {
	Pressed, Released bool
}

var dirButtons = [4]pond.Button{pond.ButtonLeft, pond.ButtonRight, pond.ButtonUp, pond.ButtonDown}

// translate turns polled input into the event batch for the next tick.
// touching is the action state the host last reported; the returned bool is
// the new one.
func translate(in Input, touching bool) ([]pond.Event, bool) {
	var events []pond.Event
	switch {
	case in.Action && !touching:
		events = append(events, pond.Press())
		touching = true
	case !in.Action && touching:
		events = append(events, pond.Release())
		touching = false
	}

	if in.BackPressed {
		events = append(events, pond.ButtonEvent{Button: pond.ButtonBack, State: pond.Pressed})
	}
	for i, d := range in.Dirs {
		if d.Pressed {
			events = append(events, pond.ButtonEvent{Button: dirButtons[i], State: pond.Pressed})
		}
		if d.Released {
			events = append(events, pond.ButtonEvent{Button: dirButtons[i], State: pond.Released})
		}
	}
	for _, c := range in.Chars {
		events = append(events, pond.UnknownEvent{Kind: "key:" + string(c)})
	}
	return events, touching
}

// toRGBA converts the rendered frame into the texture upload buffer.
func toRGBA(dst []color.RGBA, src []pond.Pixel) {
	for i, p := range src {
		dst[i] = p.RGBA()
	}
}

// pushHistory appends v keeping at most max values.
func pushHistory(h []float64, v float64, max int) []float64 {
	h = append(h, v)
	if len(h) > max {
		h = h[len(h)-max:]
	}
	return h
}
