package app

import (
	"time"

	"github.com/dshills/termkit/internal/backend"
	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
)

// State is the lifecycle state of a Loop.
type State int32

const (
	Idle State = iota
	Running
	ShuttingDown
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// EventKind identifies what a handler is being told about.
type EventKind uint8

const (
	// EventTerminal carries a terminal event. For keys, Match holds the
	// matcher's verdict on the chord.
	EventTerminal EventKind = iota

	// EventTick is the periodic tick.
	EventTick

	// EventAction carries a matched action that is not a reserved one.
	EventAction

	// EventFocus reports a focus change or a focus command.
	EventFocus

	// EventMessage carries a payload passed to Loop.Send.
	EventMessage

	// EventError reports a terminal I/O failure. Returning Exit makes the
	// failure fatal; Continue keeps the loop running.
	EventError

	// EventShutdown is the last event a handler receives.
	EventShutdown
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case EventTerminal:
		return "terminal"
	case EventTick:
		return "tick"
	case EventAction:
		return "action"
	case EventFocus:
		return "focus"
	case EventMessage:
		return "message"
	case EventError:
		return "error"
	case EventShutdown:
		return "shutdown"
	}
	return "unknown"
}

// FocusChange describes focus before and after a change.
type FocusChange struct {
	From    focus.ID
	To      focus.ID
	HasFrom bool
	HasTo   bool
}

// Moved reports whether the current target changed.
func (c FocusChange) Moved() bool {
	return c.From != c.To || c.HasFrom != c.HasTo
}

// Event is delivered to the application handler. Kind selects which of
// the other fields are meaningful.
type Event struct {
	Kind EventKind
	Time time.Time

	Terminal backend.Event // EventTerminal
	Match    input.Result  // EventTerminal with a key
	Action   keymap.Action // EventAction
	Focus    FocusChange   // EventFocus
	Message  any           // EventMessage
	Err      error         // EventError
}

// Directive is a handler's answer to an event.
type Directive uint8

const (
	Continue Directive = iota
	Exit
)

// Handler receives every event on the loop goroutine. It must not block.
type Handler func(ev Event) Directive
