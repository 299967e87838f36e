package key

import (
	"unicode"
)

// Event is a single chord: a key together with the modifiers held while it
// was pressed. Events are comparable values and may be used as map keys once
// normalized.
type Event struct {
	// Key is the key that was pressed.
	// For character keys, this is KeyRune and Rune contains the character.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers are the modifier keys held during the press.
	Modifiers Modifier
}

// NewRuneEvent creates a chord for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a chord for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// Normalize returns the canonical form of the chord. Normalize is
// idempotent.
//
// For character keys held with Shift alone, Shift is part of the
// character: Shift+a becomes A with no Shift modifier. When Ctrl, Alt or
// Super is held the letter is lowercased and Shift stays a modifier, so
// terminals that report Ctrl+Q as an uppercase rune still match a
// "Ctrl+q" binding. The space character is reported as KeySpace.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.Rune == ' ' {
		return Event{Key: KeySpace, Modifiers: e.Modifiers}
	}
	if e.Modifiers.Without(ModShift).IsEmpty() {
		if e.Modifiers.Has(ModShift) {
			e.Rune = unicode.ToUpper(e.Rune)
			e.Modifiers = ModNone
		}
		return e
	}
	e.Rune = unicode.ToLower(e.Rune)
	return e
}

// Equals reports whether two chords are the same after normalization.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// String returns the canonical textual form of the chord, e.g. "Ctrl+q",
// "Shift+Tab" or "G". The result parses back to an equal chord.
func (e Event) String() string {
	n := e.Normalize()

	var name string
	switch {
	case n.Key == KeyRune && n.Rune == '+':
		name = "+"
	case n.Key == KeyRune:
		name = string(n.Rune)
	default:
		name = n.Key.String()
	}

	if mods := n.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
