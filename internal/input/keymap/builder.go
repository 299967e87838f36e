package keymap

import (
	"errors"
	"strings"

	"github.com/dshills/termkit/internal/input/key"
)

// Builder accumulates bindings and produces an immutable Table.
// Builder methods return the receiver so calls can be chained. Errors are
// deferred until Build.
type Builder struct {
	entries []entry
}

type entry struct {
	action  Action
	keys    string
	seq     *key.Sequence
	context string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bind binds one sequence string to action. The string may hold several
// whitespace-separated chords, e.g. "g g".
func (b *Builder) Bind(action Action, keys string) *Builder {
	b.entries = append(b.entries, entry{action: action, keys: keys})
	return b
}

// BindMulti binds each alternative sequence string to the same action.
func (b *Builder) BindMulti(action Action, keys ...string) *Builder {
	for _, k := range keys {
		b.Bind(action, k)
	}
	return b
}

// BindSequence binds an already parsed sequence to action.
func (b *Builder) BindSequence(action Action, seq key.Sequence) *Builder {
	s := seq.Clone()
	b.entries = append(b.entries, entry{action: action, seq: &s})
	return b
}

// Context declares the bindings added by fn inside the named context.
func (b *Builder) Context(name string, fn func(*Builder)) *Builder {
	sub := NewBuilder()
	fn(sub)
	for _, e := range sub.entries {
		if e.context == "" {
			e.context = name
		}
		b.entries = append(b.entries, e)
	}
	return b
}

// Len returns the number of declared bindings.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Override layers other on top of b. Within each context, every action
// that other declares loses its existing bindings in b, and every
// sequence that other declares is unbound from whatever b had on it.
// The result is that other wins wherever the two disagree.
func (b *Builder) Override(other *Builder) *Builder {
	if other == nil {
		return b
	}

	type scoped struct {
		context string
		name    string
	}
	actions := make(map[scoped]bool)
	sequences := make(map[scoped]bool)
	for _, e := range other.entries {
		actions[scoped{e.context, string(e.action)}] = true
		if seq, err := e.sequence(); err == nil {
			sequences[scoped{e.context, seq.String()}] = true
		}
	}

	kept := b.entries[:0:0]
	for _, e := range b.entries {
		if actions[scoped{e.context, string(e.action)}] {
			continue
		}
		if seq, err := e.sequence(); err == nil && sequences[scoped{e.context, seq.String()}] {
			continue
		}
		kept = append(kept, e)
	}
	b.entries = append(kept, other.entries...)
	return b
}

// Clone returns an independent copy of the builder.
func (b *Builder) Clone() *Builder {
	return &Builder{entries: append([]entry(nil), b.entries...)}
}

func (e entry) sequence() (key.Sequence, error) {
	if e.seq != nil {
		if e.seq.IsEmpty() {
			return key.Sequence{}, ErrEmptySequence
		}
		return *e.seq, nil
	}
	if strings.TrimSpace(e.keys) == "" {
		return key.Sequence{}, ErrEmptySequence
	}
	return key.ParseSequence(e.keys)
}

// Build validates the accumulated bindings and returns the table.
// All problems are reported together; the returned error joins one
// *BuildError per problem.
func (b *Builder) Build() (*Table, error) {
	scopes := map[string]*Index{"": NewIndex()}
	var errs []error

	for _, e := range b.entries {
		ix, ok := scopes[e.context]
		if !ok {
			ix = NewIndex()
			scopes[e.context] = ix
		}

		if e.action.IsZero() {
			errs = append(errs, &BuildError{Kind: BuildErrEmpty, Context: e.context, Input: e.keys, Err: ErrEmptyAction})
			continue
		}

		seq, err := e.sequence()
		if err != nil {
			kind := BuildErrParse
			if errors.Is(err, ErrEmptySequence) || errors.Is(err, key.ErrEmptySpec) {
				kind = BuildErrEmpty
				err = ErrEmptySequence
			}
			errs = append(errs, &BuildError{Kind: kind, Action: e.action, Context: e.context, Input: e.keys, Err: err})
			continue
		}

		err = ix.Insert(Binding{Action: e.action, Sequence: seq, Keys: e.keys, Context: e.context})
		var ce *ConflictError
		if errors.As(err, &ce) {
			errs = append(errs, &BuildError{
				Kind:    BuildErrDuplicate,
				Action:  e.action,
				Context: e.context,
				Input:   e.keys,
				Err:     ce,
				Actions: []Action{ce.Existing, ce.Incoming},
				Seq:     seq,
			})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return newTable(scopes), nil
}
