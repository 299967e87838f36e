package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModSuper // Cmd on macOS, Win on Windows
)

// Has reports whether mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty reports whether no modifier is held.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// modifierOrder is the canonical order in which modifiers are written.
var modifierOrder = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModSuper, "Super"},
}

// String returns the canonical representation, e.g. "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	parts := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// ModifierFromName returns the Modifier for a name, ignoring case. Only
// the four canonical names are accepted.
func ModifierFromName(name string) (Modifier, bool) {
	for _, o := range modifierOrder {
		if strings.EqualFold(name, o.name) {
			return o.mod, true
		}
	}
	return ModNone, false
}
