package pond

import "fmt"

// Event is one abstract input event delivered by the host. Only
// ButtonEvent values for ButtonAction are interpreted.
type Event interface {
	event()
}

// Button identifies a logical input button.
type Button int

const (
	ButtonAction Button = iota
	ButtonBack
	ButtonLeft
	ButtonRight
	ButtonUp
	ButtonDown
)

func (b Button) String() string {
	switch b {
	case ButtonAction:
		return "action"
	case ButtonBack:
		return "back"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

type ButtonState int

const (
	Pressed ButtonState = iota
	Released
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// ButtonEvent is a button-state change.
type ButtonEvent struct {
	Button Button
	State  ButtonState
}

func (ButtonEvent) event() {}

// UnknownEvent carries any host event the pond does not interpret, such as
// key presses or window focus changes.
type UnknownEvent struct {
	Kind string
}

func (UnknownEvent) event() {}

// Press and Release build action-button events.
func Press() Event   { return ButtonEvent{Button: ButtonAction, State: Pressed} }
func Release() Event { return ButtonEvent{Button: ButtonAction, State: Released} }

// TouchState is the state of the single logical pointer.
type TouchState int

const (
	Idle TouchState = iota
	Touching
)

func (s TouchState) String() string {
	if s == Touching {
		return "touching"
	}
	return "idle"
}

// Transition describes how one action-button event moved the processor.
// From and To are equal when the event did not change state, e.g. a second
// press while already touching.
type Transition struct {
	State    ButtonState
	From, To TouchState
}

// Entered reports an Idle -> Touching transition.
func (t Transition) Entered() bool { return t.From == Idle && t.To == Touching }

// Left reports a Touching -> Idle transition.
func (t Transition) Left() bool { return t.From == Touching && t.To == Idle }

// Processor is the Idle/Touching state machine.
type Processor struct {
	state TouchState
}

func (p *Processor) State() TouchState { return p.state }

// Apply feeds one event. It returns false for events that are not
// action-button changes; those never alter state.
func (p *Processor) Apply(ev Event) (Transition, bool) {
	be, ok := ev.(ButtonEvent)
	if !ok || be.Button != ButtonAction {
		return Transition{}, false
	}
	tr := Transition{State: be.State, From: p.state, To: p.state}
	switch be.State {
	case Pressed:
		tr.To = Touching
	case Released:
		tr.To = Idle
	}
	p.state = tr.To
	return tr, true
}

// Reset returns the processor to Idle.
func (p *Processor) Reset() { p.state = Idle }
