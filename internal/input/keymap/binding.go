package keymap

import (
	"github.com/dshills/termkit/internal/input/key"
)

// Binding is a single sequence-to-action mapping.
type Binding struct {
	// Action is triggered when Sequence is typed.
	Action Action

	// Sequence is the parsed, normalized chord list.
	Sequence key.Sequence

	// Keys is the text the binding was declared with. Empty when the
	// binding was created from a parsed sequence.
	Keys string

	// Context is the scope the binding was declared in. Empty for global.
	Context string
}

// String returns "keys -> action".
func (b Binding) String() string {
	return b.Sequence.String() + " -> " + string(b.Action)
}
