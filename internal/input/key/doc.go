// Package key defines the chord model used by the binding table and the
// input matcher.
//
// A chord is a single key press: a Key plus a set of Modifiers. Character
// keys use KeyRune with the character stored in Event.Rune. A Sequence is
// an ordered list of chords that must be typed in order to trigger a binding.
//
// The textual grammar for a chord is
//
//	[Modifier+]*KeyName
//
// where Modifier is one of Shift, Ctrl, Alt or Super (case-insensitive) and
// KeyName is a named key (Enter, Tab, F5, PageUp, ...) or a single character.
// Chords in a sequence string are separated by whitespace:
//
//	"Ctrl+q"          single chord
//	"Shift+Tab"       single chord
//	"g g"             two chords
//	"Ctrl+x Ctrl+s"   two chords
package key
