// Package backend abstracts the terminal: it decodes input into
// structured events and accepts cell-level drawing.
package backend

import (
	"time"

	"github.com/dshills/termkit/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
	EventError
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventResize:
		return "resize"
	case EventPaste:
		return "paste"
	case EventFocus:
		return "focus"
	case EventInterrupt:
		return "interrupt"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	}
	return "none"
}

// Event represents a terminal event.
type Event struct {
	Type EventType
	When time.Time

	// Key event fields
	Key key.Event

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton
	Mod            key.Modifier

	// Resize event fields
	Width, Height int

	// Focus event fields; for paste events, true marks the start.
	Focused bool

	// Error event field
	Err error

	// Interrupt event payload
	Data any
}

// KeyEvent creates a key event for chord k.
func KeyEvent(k key.Event) Event {
	return Event{Type: EventKey, When: time.Now(), Key: k.Normalize()}
}

// ResizeEvent creates a resize event.
func ResizeEvent(w, h int) Event {
	return Event{Type: EventResize, When: time.Now(), Width: w, Height: h}
}

// ErrorEvent creates an error event.
func ErrorEvent(err error) Event {
	return Event{Type: EventError, When: time.Now(), Err: err}
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)
