package app

import (
	"log/slog"
	"time"

	"github.com/dshills/termkit/internal/input/keymap"
)

// Default loop settings.
const (
	DefaultTickRate  = 16 * time.Millisecond
	DefaultQueueSize = 256
)

// Options configures a Loop.
type Options struct {
	// TickRate is the interval between ticks.
	TickRate time.Duration

	// QueueSize bounds the terminal event and command queues.
	QueueSize int

	// FocusNextAction and FocusPrevAction are reserved for focus
	// navigation. QuitAction begins shutdown. An empty name disables
	// the reservation.
	FocusNextAction keymap.Action
	FocusPrevAction keymap.Action
	QuitAction      keymap.Action

	// ScopeBindingsToFocus switches the matcher to the binding context
	// named after the focused target whenever focus changes.
	ScopeBindingsToFocus bool

	// Logger receives loop diagnostics. Nil discards them.
	Logger *slog.Logger

	// Clock returns the current time. Nil uses time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the default loop options.
func DefaultOptions() Options {
	return Options{
		TickRate:        DefaultTickRate,
		QueueSize:       DefaultQueueSize,
		FocusNextAction: keymap.ActionFocusNext,
		FocusPrevAction: keymap.ActionFocusPrev,
		QuitAction:      keymap.ActionQuit,
	}
}

func (o Options) withDefaults() Options {
	if o.TickRate <= 0 {
		o.TickRate = DefaultTickRate
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}
