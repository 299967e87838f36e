package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	// ErrInvalidSpec matches every error returned by Parse and ParseSequence.
	ErrInvalidSpec = errors.New("invalid key spec")

	// ErrEmptySpec indicates an empty or whitespace-only spec.
	ErrEmptySpec = errors.New("empty key spec")

	// ErrUnknownKey indicates a key name that is neither a named key nor a
	// single character.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownModifier indicates a modifier other than Shift, Ctrl, Alt or Super.
	ErrUnknownModifier = errors.New("unknown modifier")

	// ErrMissingKey indicates a spec with modifiers but no key, e.g. "Ctrl+".
	ErrMissingKey = errors.New("missing key name")
)

// ParseError describes a key spec that could not be parsed.
type ParseError struct {
	Spec  string // the full spec being parsed
	Token string // the offending token, if any
	Err   error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("key spec %q: %v %q", e.Spec, e.Err, e.Token)
	}
	return fmt.Sprintf("key spec %q: %v", e.Spec, e.Err)
}

// Unwrap allows errors.Is to match both the specific cause and ErrInvalidSpec.
func (e *ParseError) Unwrap() []error {
	return []error{e.Err, ErrInvalidSpec}
}

// Parse parses a single chord of the form [Modifier+]*KeyName.
//
// Modifier and key names are case-insensitive. A single character is a
// character key; "+" on its own, or after a modifier as in "Ctrl++", is the
// plus key. The returned chord is normalized.
func Parse(spec string) (Event, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return Event{}, &ParseError{Spec: spec, Err: ErrEmptySpec}
	}
	if strings.ContainsAny(s, " \t\n") {
		return Event{}, &ParseError{Spec: spec, Token: s, Err: ErrUnknownKey}
	}

	var modPart, keyPart string
	switch {
	case s == "+":
		keyPart = "+"
	case strings.HasSuffix(s, "++"):
		modPart, keyPart = s[:len(s)-2], "+"
		if modPart == "" {
			return Event{}, &ParseError{Spec: spec, Token: s, Err: ErrUnknownKey}
		}
	default:
		if i := strings.LastIndex(s, "+"); i >= 0 {
			modPart, keyPart = s[:i], s[i+1:]
		} else {
			keyPart = s
		}
	}

	if keyPart == "" {
		return Event{}, &ParseError{Spec: spec, Err: ErrMissingKey}
	}

	var mods Modifier
	if modPart != "" {
		for _, name := range strings.Split(modPart, "+") {
			mod, ok := ModifierFromName(name)
			if !ok {
				return Event{}, &ParseError{Spec: spec, Token: name, Err: ErrUnknownModifier}
			}
			mods = mods.With(mod)
		}
	}

	if !utf8.ValidString(keyPart) {
		return Event{}, &ParseError{Spec: spec, Token: keyPart, Err: ErrUnknownKey}
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods).Normalize(), nil
	}
	k, ok := KeyFromName(keyPart)
	if !ok {
		return Event{}, &ParseError{Spec: spec, Token: keyPart, Err: ErrUnknownKey}
	}
	return NewSpecialEvent(k, mods).Normalize(), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return ev
}

// ParseSequence parses whitespace-separated chords, e.g. "Ctrl+x Ctrl+s".
// An empty string is an error: a binding needs at least one chord.
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return Sequence{}, &ParseError{Spec: spec, Err: ErrEmptySpec}
	}

	events := make([]Event, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Spec = spec
			}
			return Sequence{}, err
		}
		events = append(events, ev)
	}
	return Sequence{Events: events}, nil
}

// MustParseSequence is like ParseSequence but panics on error.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic(err)
	}
	return seq
}
