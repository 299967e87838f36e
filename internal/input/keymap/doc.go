// Package keymap maps key sequences to named actions.
//
// Bindings are accumulated with a Builder and frozen into an immutable
// Table by Build:
//
//	table, err := keymap.NewBuilder().
//		Bind("focus_next", "Tab").
//		BindMulti("quit", "q", "Ctrl+q").
//		Bind("goto_top", "g g").
//		Build()
//
// Build validates every binding. An unparsable key string, an empty
// sequence, or the same sequence bound to two different actions in the
// same scope is reported as a *BuildError; all problems are returned
// together via errors.Join.
//
// # Contexts
//
// Bindings may be grouped under a named context. The view of a context
// is the global bindings overlaid with that context's bindings, so a
// context may rebind a global sequence without conflict.
//
//	b.Context("editor", func(b *keymap.Builder) {
//		b.Bind("save", "Ctrl+s")
//	})
//
// # Files
//
// Loader reads bindings from TOML, YAML or JSON. Each action maps to a
// single key string or a list of alternatives:
//
//	[global]
//	quit = ["q", "Ctrl+q"]
//	focus_next = "Tab"
//
//	[contexts.editor]
//	save = "Ctrl+s"
package keymap
