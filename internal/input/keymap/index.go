package keymap

import (
	"sort"

	"github.com/dshills/termkit/internal/input/key"
)

// Match is the result of resolving a chord prefix against an Index.
type Match struct {
	// Action is the action bound to exactly this prefix, if Exact.
	Action Action

	// Exact is true when the prefix is itself a bound sequence.
	Exact bool

	// Extensible is true when at least one longer bound sequence starts
	// with the prefix.
	Extensible bool
}

// Index is a prefix tree of bindings keyed by normalized chords.
// An Index is not safe for concurrent mutation.
type Index struct {
	root *indexNode
	size int
}

type indexNode struct {
	children map[key.Event]*indexNode
	binding  *Binding
}

func newIndexNode() *indexNode {
	return &indexNode{children: make(map[key.Event]*indexNode)}
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{root: newIndexNode()}
}

// Len returns the number of bound sequences.
func (ix *Index) Len() int {
	return ix.size
}

// Insert adds a binding. Binding the same sequence to the same action
// again is a no-op. Binding it to a different action returns a
// *ConflictError and leaves the index unchanged.
func (ix *Index) Insert(b Binding) error {
	return ix.put(b, false)
}

// Override adds a binding, replacing any action already bound to the
// same sequence.
func (ix *Index) Override(b Binding) error {
	return ix.put(b, true)
}

func (ix *Index) put(b Binding, replace bool) error {
	if b.Sequence.IsEmpty() {
		return ErrEmptySequence
	}
	if b.Action.IsZero() {
		return ErrEmptyAction
	}

	node := ix.root
	for _, ev := range b.Sequence.Events {
		ev = ev.Normalize()
		child, ok := node.children[ev]
		if !ok {
			child = newIndexNode()
			node.children[ev] = child
		}
		node = child
	}

	if node.binding != nil {
		if node.binding.Action == b.Action || replace {
			node.binding = &b
			return nil
		}
		return &ConflictError{
			Sequence: b.Sequence,
			Existing: node.binding.Action,
			Incoming: b.Action,
		}
	}

	node.binding = &b
	ix.size++
	return nil
}

// Resolve reports how prefix relates to the bound sequences.
func (ix *Index) Resolve(prefix key.Sequence) Match {
	node := ix.root
	for _, ev := range prefix.Events {
		child, ok := node.children[ev.Normalize()]
		if !ok {
			return Match{}
		}
		node = child
	}

	m := Match{Extensible: len(node.children) > 0}
	if node.binding != nil && !prefix.IsEmpty() {
		m.Exact = true
		m.Action = node.binding.Action
	}
	return m
}

// Lookup returns the action bound to exactly seq.
func (ix *Index) Lookup(seq key.Sequence) (Action, bool) {
	m := ix.Resolve(seq)
	return m.Action, m.Exact
}

// Bindings returns every binding, sorted by action then sequence.
func (ix *Index) Bindings() []Binding {
	out := make([]Binding, 0, ix.size)
	var walk func(n *indexNode)
	walk = func(n *indexNode) {
		if n.binding != nil {
			out = append(out, *n.binding)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(ix.root)
	sortBindings(out)
	return out
}

// Clone returns a deep copy of the index.
func (ix *Index) Clone() *Index {
	var clone func(n *indexNode) *indexNode
	clone = func(n *indexNode) *indexNode {
		c := &indexNode{
			children: make(map[key.Event]*indexNode, len(n.children)),
			binding:  n.binding,
		}
		for ev, child := range n.children {
			c.children[ev] = clone(child)
		}
		return c
	}
	return &Index{root: clone(ix.root), size: ix.size}
}

func sortBindings(bs []Binding) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Action != bs[j].Action {
			return bs[i].Action < bs[j].Action
		}
		return bs[i].Sequence.String() < bs[j].Sequence.String()
	})
}
