package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dshills/termkit/internal/input/keymap"
)

// KeysCmd prints the binding table.
type KeysCmd struct {
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Context string `help:"Show the view of one binding context"`
}

// Run executes the keys command.
func (k *KeysCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	table, err := buildTable(cfg)
	if err != nil {
		return err
	}
	if k.Context != "" && !table.HasContext(k.Context) {
		return fmt.Errorf("unknown context %q (have: %s)", k.Context, strings.Join(table.Contexts(), ", "))
	}

	rows := keyRows(table, k.Context)
	if k.Format == "json" {
		return printKeysJSON(os.Stdout, rows)
	}
	return printKeysTable(os.Stdout, rows)
}

type keyRow struct {
	Action  string   `json:"action"`
	Context string   `json:"context,omitempty"`
	Keys    []string `json:"keys"`
}

// keyRows groups bindings by scope and action. With context set only
// that context's view is listed.
func keyRows(table *keymap.Table, context string) []keyRow {
	var bindings []keymap.Binding
	if context != "" {
		bindings = table.Bindings(context)
	} else {
		bindings = table.AllBindings()
	}

	var rows []keyRow
	index := make(map[[2]string]int)
	for _, b := range bindings {
		scope := b.Context
		if context != "" {
			scope = context
		}
		id := [2]string{scope, string(b.Action)}
		i, ok := index[id]
		if !ok {
			i = len(rows)
			index[id] = i
			rows = append(rows, keyRow{Action: string(b.Action), Context: scope})
		}
		rows[i].Keys = append(rows[i].Keys, b.Sequence.String())
	}
	return rows
}

func printKeysTable(w io.Writer, rows []keyRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tCONTEXT\tKEYS")
	for _, r := range rows {
		ctx := r.Context
		if ctx == "" {
			ctx = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Action, ctx, strings.Join(r.Keys, ", "))
	}
	return tw.Flush()
}

func printKeysJSON(w io.Writer, rows []keyRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
