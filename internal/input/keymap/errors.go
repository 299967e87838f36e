package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/termkit/internal/input/key"
)

// Binding errors.
var (
	// ErrConflict indicates a sequence already bound to a different action.
	ErrConflict = errors.New("sequence bound to multiple actions")

	// ErrEmptySequence indicates a binding with no chords.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrEmptyAction indicates a binding with no action name.
	ErrEmptyAction = errors.New("empty action name")

	// ErrUnsupportedFormat indicates a keymap file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported keymap format")
)

// ConflictError reports a sequence that is already bound to another action.
type ConflictError struct {
	Sequence key.Sequence
	Existing Action
	Incoming Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %q is bound to %q and %q", ErrConflict, e.Sequence.String(), e.Existing, e.Incoming)
}

// Unwrap returns ErrConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// BuildErrorKind classifies a BuildError.
type BuildErrorKind uint8

const (
	// BuildErrParse is an unparsable key string.
	BuildErrParse BuildErrorKind = iota
	// BuildErrEmpty is an empty key string or sequence.
	BuildErrEmpty
	// BuildErrDuplicate is one sequence bound to two different actions.
	BuildErrDuplicate
)

// String returns the kind name.
func (k BuildErrorKind) String() string {
	switch k {
	case BuildErrParse:
		return "parse"
	case BuildErrEmpty:
		return "empty"
	case BuildErrDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// BuildError describes one invalid binding found by Builder.Build.
type BuildError struct {
	Kind    BuildErrorKind
	Action  Action
	Context string
	Input   string       // key text as declared
	Err     error        // underlying cause
	Actions []Action     // conflicting actions, for BuildErrDuplicate
	Seq     key.Sequence // conflicting sequence, for BuildErrDuplicate
}

func (e *BuildError) Error() string {
	var sb strings.Builder
	sb.WriteString("keymap")
	if e.Context != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Context)
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	switch e.Kind {
	case BuildErrDuplicate:
		fmt.Fprintf(&sb, "sequence %q bound to both %q and %q", e.Seq.String(), e.Actions[0], e.Actions[1])
	default:
		fmt.Fprintf(&sb, "action %q: %v", e.Action, e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// BuildErrors extracts every *BuildError from an error returned by Build.
func BuildErrors(err error) []*BuildError {
	if err == nil {
		return nil
	}
	var out []*BuildError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, BuildErrors(e)...)
		}
		return out
	}
	var be *BuildError
	if errors.As(err, &be) {
		out = append(out, be)
	}
	return out
}
