// Package config loads termkit settings.
//
// Settings come from four layers, highest precedence first: command-line
// flags, TERMKIT_* environment variables, a TOML file, and built-in
// defaults. The CLI applies flags itself; this package handles the rest.
//
// A minimal file:
//
//	[input]
//	sequence_timeout = "750ms"
//	pending_policy = "wait"
//
//	[loop]
//	tick_rate = "16ms"
//	scope_bindings_to_focus = true
//
//	[bindings.global]
//	save = "Ctrl+s"
//	goto_top = ["g g", "Home"]
//
//	[bindings.contexts.search]
//	submit = "Enter"
//
// Watcher reports edits to the config and keymap files so a running
// program can rebuild its binding table.
package config
