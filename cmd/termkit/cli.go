package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/dshills/termkit/internal/config"
	"github.com/dshills/termkit/internal/input/keymap"
)

// CLI is the command-line grammar. Flags override environment variables,
// which override the config file.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version information"`
	Config   string           `help:"Path to config file" short:"c" type:"path" env:"TERMKIT_CONFIG"`
	Keymap   string           `help:"Keymap file (.toml, .yaml or .json)" short:"k" type:"path"`
	Debug    bool             `help:"Enable debug logging to file" short:"d"`
	LogLevel string           `help:"Log level: debug, info, warn or error"`
	LogFile  string           `help:"Log file path (implies logging)" type:"path"`

	Run   RunCmd   `cmd:"" help:"Start the interactive demo (default)" default:"1"`
	Keys  KeysCmd  `cmd:"" help:"Print the resolved binding table"`
	Check CheckCmd `cmd:"" help:"Validate a keymap file"`
}

// loadConfig reads the config file and environment, then applies the
// global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Keymap != "" {
		cfg.Keymap.File = c.Keymap
	}
	if c.Debug {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = c.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildTable layers the default bindings, the inline [bindings] section
// and the keymap file, later layers replacing earlier ones per action
// and sequence.
func buildTable(cfg *config.Config) (*keymap.Table, error) {
	b := keymap.Defaults()

	inline, err := cfg.InlineBindings()
	if err != nil {
		return nil, err
	}
	b.Override(inline)

	if cfg.Keymap.File != "" {
		file, err := keymap.NewLoader().LoadFile(cfg.Keymap.File)
		if err != nil {
			return nil, fmt.Errorf("keymap %s: %w", cfg.Keymap.File, err)
		}
		b.Override(file)
	}

	return b.Build()
}
