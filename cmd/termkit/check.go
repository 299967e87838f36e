package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/termkit/internal/input/keymap"
)

// CheckCmd validates a keymap file.
type CheckCmd struct {
	File string `arg:"" help:"Keymap file to validate" type:"existingfile"`
}

// ErrInvalidKeymap is returned when a checked keymap has problems.
var ErrInvalidKeymap = errors.New("keymap has errors")

// Run executes the check command.
func (c *CheckCmd) Run() error {
	return checkKeymap(os.Stdout, c.File)
}

func checkKeymap(w io.Writer, path string) error {
	b, err := keymap.NewLoader().LoadFile(path)
	if err != nil {
		return err
	}

	table, err := b.Build()
	if err != nil {
		problems := keymap.BuildErrors(err)
		for _, p := range problems {
			fmt.Fprintf(w, "%s: %v\n", path, p)
		}
		return fmt.Errorf("%w: %d problem(s) in %s", ErrInvalidKeymap, len(problems), path)
	}

	fmt.Fprintf(w, "%s: ok, %d binding(s)", path, table.Len())
	if ctxs := table.Contexts(); len(ctxs) > 0 {
		fmt.Fprintf(w, " in %d context(s)", len(ctxs))
	}
	fmt.Fprintln(w)
	return nil
}
