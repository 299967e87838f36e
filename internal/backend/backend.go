package backend

import "github.com/mattn/go-runewidth"

// Style holds cell attributes.
type Style struct {
	Bold      bool
	Dim       bool
	Reverse   bool
	Underline bool
}

// Backend is the terminal collaborator. Input methods are called from
// the input pump goroutine; drawing methods from the event loop.
// Implementations must allow the two to run concurrently.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A blocked PollEvent returns an EventClosed event.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, r rune, style Style)

	// Clear clears the entire screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event) error
}

// DrawText writes s starting at (x, y) and returns the number of columns
// used. Wide runes occupy two columns.
func DrawText(b Backend, x, y int, s string, style Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// TextWidth returns the display width of s in columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
