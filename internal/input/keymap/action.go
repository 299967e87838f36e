package keymap

// Action is an opaque name for something the application can do.
// Several sequences may map to the same action.
type Action string

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// IsZero reports whether a is the empty action.
func (a Action) IsZero() bool {
	return a == ""
}

// Reserved action names understood by the event loop.
const (
	ActionFocusNext Action = "focus_next"
	ActionFocusPrev Action = "focus_prev"
	ActionQuit      Action = "quit"
	ActionActivate  Action = "activate"
)
