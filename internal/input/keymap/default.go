package keymap

// Defaults returns the built-in bindings: focus traversal with Tab and
// Shift+Tab, activation with Enter or Space, and quit.
func Defaults() *Builder {
	return NewBuilder().
		Bind(ActionFocusNext, "Tab").
		Bind(ActionFocusPrev, "Shift+Tab").
		BindMulti(ActionActivate, "Enter", "Space").
		BindMulti(ActionQuit, "q", "Ctrl+q", "Ctrl+c")
}
