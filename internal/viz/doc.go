// Package viz is the interactive terminal host for a pond.
//
// [Model] is a Bubble Tea program that ticks the pond at a fixed rate,
// renders each frame onto a half-block [Canvas] and shows the level history
// beside it. Terminals deliver no key-up events, so the space key alternates
// between pressing and releasing the action button.
//
// # Key Bindings
//
//	Space - Press / release the action button
//	Enter - Tap (press and release in one tick)
//	P     - Pause/Resume
//	R     - Reset the pond
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// Arrow keys are forwarded as direction buttons and every other key as an
// unknown event; the pond ignores both.
package viz
