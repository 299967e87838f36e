package backend

import (
	"errors"
	"sync"
)

// ErrQueueFull is returned by PostEvent when the event queue is full.
var ErrQueueFull = errors.New("backend: event queue full")

// NullBackend is an in-memory backend for tests. Events are fed with
// PostEvent; drawing goes to a cell buffer that can be read back.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]rune
	styles [][]Style
	shows  int

	events   chan Event
	done     chan struct{}
	shutOnce sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]rune, b.height)
	b.styles = make([][]Style, b.height)
	for y := range b.cells {
		b.cells[y] = make([]rune, b.width)
		b.styles[y] = make([]Style, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = ' '
		}
	}
}

func (b *NullBackend) Init() error { return nil }

// Shutdown unblocks PollEvent, which then reports EventClosed.
func (b *NullBackend) Shutdown() {
	b.shutOnce.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, r rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = r
		b.styles[y][x] = style
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventClosed}
	}
}

func (b *NullBackend) PostEvent(event Event) error {
	select {
	case b.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Row returns the text of row y.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	return string(b.cells[y])
}

// StyleAt returns the style of the cell at (x, y).
func (b *NullBackend) StyleAt(x, y int) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Style{}
	}
	return b.styles[y][x]
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Resize simulates a terminal resize and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()
	_ = b.PostEvent(ResizeEvent(width, height))
}
