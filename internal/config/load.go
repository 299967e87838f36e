package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath returns the per-user config file location,
// <user config dir>/termkit/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "termkit", "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file at path and
// the process environment, then validates it. An empty path uses
// DefaultPath and tolerates a missing file; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case errors.Is(err, ErrFileNotFound) && !explicit:
		case err != nil:
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReader decodes TOML from r over the defaults without consulting the
// environment. The result is not validated.
func LoadReader(r io.Reader) (*Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.decode("<reader>", data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := c.decode(path, data); err != nil {
		return err
	}

	// A relative keymap path is relative to the config file.
	if c.Keymap.File != "" && !filepath.IsAbs(c.Keymap.File) {
		c.Keymap.File = filepath.Join(filepath.Dir(path), c.Keymap.File)
	}
	return nil
}

// decode overlays TOML data on c. Keys present in the data replace the
// current values; absent keys keep them.
func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}
