package key

import "strings"

// Sequence is an ordered list of chords. A sequence of length one is a
// single chord binding.
type Sequence struct {
	Events []Event
}

// NewSequence creates a sequence from the given chords, normalizing each.
func NewSequence(events ...Event) Sequence {
	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = ev.Normalize()
	}
	return Sequence{Events: out}
}

// Len returns the number of chords in the sequence.
func (s Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no chords.
func (s Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Append returns a new sequence with ev added to the end.
// The receiver is never modified.
func (s Sequence) Append(ev Event) Sequence {
	out := make([]Event, len(s.Events), len(s.Events)+1)
	copy(out, s.Events)
	return Sequence{Events: append(out, ev.Normalize())}
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s.Events == nil {
		return Sequence{}
	}
	out := make([]Event, len(s.Events))
	copy(out, s.Events)
	return Sequence{Events: out}
}

// Equals reports whether two sequences contain the same chords in order.
func (s Sequence) Equals(other Sequence) bool {
	if len(s.Events) != len(other.Events) {
		return false
	}
	for i := range s.Events {
		if !s.Events[i].Equals(other.Events[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of s. Every sequence has
// the empty sequence and itself as prefixes.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix.Events) > len(s.Events) {
		return false
	}
	for i := range prefix.Events {
		if !s.Events[i].Equals(prefix.Events[i]) {
			return false
		}
	}
	return true
}

// String returns the canonical form, chords separated by a single space.
func (s Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, ev := range s.Events {
		parts[i] = ev.String()
	}
	return strings.Join(parts, " ")
}
