package keymap

import (
	"sort"

	"github.com/dshills/termkit/internal/input/key"
)

// Table is an immutable set of bindings produced by Builder.Build.
// It is safe for concurrent reads.
type Table struct {
	global   *Index
	contexts map[string]*Index // bindings declared in each context
	views    map[string]*Index // global overlaid with each context
}

func newTable(scopes map[string]*Index) *Table {
	t := &Table{
		global:   scopes[""],
		contexts: make(map[string]*Index),
		views:    make(map[string]*Index),
	}
	for name, ix := range scopes {
		if name == "" {
			continue
		}
		t.contexts[name] = ix
		view := t.global.Clone()
		for _, b := range ix.Bindings() {
			// Bindings were validated on insert into ix.
			_ = view.Override(b)
		}
		t.views[name] = view
	}
	return t
}

// Empty returns a table with no bindings.
func Empty() *Table {
	return newTable(map[string]*Index{"": NewIndex()})
}

func (t *Table) view(context string) *Index {
	if v, ok := t.views[context]; ok {
		return v
	}
	return t.global
}

// Resolve reports how prefix relates to the bindings visible in context.
// An empty or unknown context resolves against global bindings.
func (t *Table) Resolve(context string, prefix key.Sequence) Match {
	return t.view(context).Resolve(prefix)
}

// Lookup returns the global action bound to exactly seq.
func (t *Table) Lookup(seq key.Sequence) (Action, bool) {
	return t.global.Lookup(seq)
}

// Index returns a mutable copy of the bindings visible in context.
func (t *Table) Index(context string) *Index {
	return t.view(context).Clone()
}

// Bindings returns the bindings visible in context, sorted by action.
func (t *Table) Bindings(context string) []Binding {
	return t.view(context).Bindings()
}

// AllBindings returns every declared binding across all scopes: global
// bindings first, then each context in name order.
func (t *Table) AllBindings() []Binding {
	out := t.global.Bindings()
	for _, name := range t.Contexts() {
		out = append(out, t.contexts[name].Bindings()...)
	}
	return out
}

// KeysFor returns the canonical key strings bound to action in context.
func (t *Table) KeysFor(context string, action Action) []string {
	var out []string
	for _, b := range t.Bindings(context) {
		if b.Action == action {
			out = append(out, b.Sequence.String())
		}
	}
	return out
}

// Contexts returns the declared context names, sorted.
func (t *Table) Contexts() []string {
	names := make([]string, 0, len(t.contexts))
	for name := range t.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasContext reports whether name was declared.
func (t *Table) HasContext(name string) bool {
	_, ok := t.contexts[name]
	return ok
}

// Len returns the number of declared bindings across all scopes.
func (t *Table) Len() int {
	n := t.global.Len()
	for _, ix := range t.contexts {
		n += ix.Len()
	}
	return n
}
