// Command termkit demonstrates key sequence matching and focus navigation
// in a terminal, and inspects keymap files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func versionInfo() string {
	return fmt.Sprintf("termkit %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("termkit"),
		kong.Description("Terminal input mapping and focus navigation toolkit."),
		kong.Vars{"version": versionInfo()},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
