package key

import (
	"fmt"
	"strconv"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeySpace

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeySpace:     "Space",
	KeyRune:      "Rune",
}

// String returns the canonical name for the key, as accepted by Parse.
func (k Key) String() string {
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", k.FunctionNumber())
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsFunctionKey returns true if k is F1 through F24.
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// FunctionNumber returns the number of a function key (1 for F1), or 0.
func (k Key) FunctionNumber() int {
	if !k.IsFunctionKey() {
		return 0
	}
	return int(k-KeyF1) + 1
}

// FunctionKey returns the key for Fn, or KeyNone if n is out of range.
func FunctionKey(n int) Key {
	if n < 1 || n > 24 {
		return KeyNone
	}
	return KeyF1 + Key(n-1)
}

// IsNavigation returns true for arrow and paging keys.
func (k Key) IsNavigation() bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight,
		KeyHome, KeyEnd, KeyPageUp, KeyPageDown:
		return true
	}
	return false
}

// keyNameMap maps lowercase key names and their aliases to keys.
var keyNameMap = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"ins":       KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"space":     KeySpace,
}

// KeyFromName returns the Key for a named key (case-insensitive).
// Single characters are not names; they parse to KeyRune.
func KeyFromName(name string) (Key, bool) {
	lower := strings.ToLower(name)
	if k, ok := keyNameMap[lower]; ok {
		return k, true
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		n, err := strconv.Atoi(lower[1:])
		if err == nil && strconv.Itoa(n) == lower[1:] {
			if k := FunctionKey(n); k != KeyNone {
				return k, true
			}
		}
	}
	return KeyNone, false
}
