package input

import (
	"github.com/dshills/termkit/internal/input/key"
	"github.com/dshills/termkit/internal/input/keymap"
)

// ResultKind classifies the outcome of feeding one chord to a Matcher.
type ResultKind uint8

const (
	// NoMatch means the chord extended nothing. The pending prefix was
	// reset and the chord was dropped.
	NoMatch ResultKind = iota

	// Partial means the chords typed so far are a strict prefix of at
	// least one binding and match none exactly.
	Partial

	// PendingExact means the chords typed so far are bound, but a longer
	// binding also starts with them. The match is confirmed when the
	// timeout elapses or a non-extending chord arrives.
	PendingExact

	// Matched means the chords typed so far are bound and nothing extends
	// them. The pending prefix was reset.
	Matched
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case NoMatch:
		return "NoMatch"
	case Partial:
		return "Partial"
	case PendingExact:
		return "PendingExact"
	case Matched:
		return "Matched"
	}
	return "Unknown"
}

// Result is returned by Matcher.Process.
type Result struct {
	Kind ResultKind

	// Action is set for Matched and PendingExact.
	Action keymap.Action

	// Sequence is the candidate sequence that was evaluated.
	Sequence key.Sequence

	// Flushed is a pending exact action confirmed by this call before the
	// new chord was evaluated, either because the prefix had gone stale
	// or because the new chord did not extend it. It fires before Action.
	Flushed keymap.Action

	// Eager is set on PendingExact results when the matcher uses
	// PolicyEager: the action should be dispatched now.
	Eager bool
}

// Fires reports whether Action should be dispatched as a result of this
// call.
func (r Result) Fires() bool {
	return r.Kind == Matched || (r.Kind == PendingExact && r.Eager)
}

// PendingPolicy controls when an exact-but-extensible match fires.
type PendingPolicy uint8

const (
	// PolicyWait fires a pending exact match only once it is confirmed.
	PolicyWait PendingPolicy = iota

	// PolicyEager fires a pending exact match immediately. The longer
	// binding can still complete afterwards; confirmation does not fire
	// the short binding a second time.
	PolicyEager
)

// String returns "wait" or "eager".
func (p PendingPolicy) String() string {
	if p == PolicyEager {
		return "eager"
	}
	return "wait"
}

// ParsePendingPolicy parses "wait" or "eager".
func ParsePendingPolicy(s string) (PendingPolicy, bool) {
	switch s {
	case "", "wait":
		return PolicyWait, true
	case "eager":
		return PolicyEager, true
	}
	return PolicyWait, false
}
