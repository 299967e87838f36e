package config

import (
	"errors"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TERMKIT_"

// LookupFunc looks up an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

type envSetting struct {
	name  string // variable name without prefix
	path  string // setting path for error reports
	apply func(c *Config, v string) error
}

var envSettings = []envSetting{
	{"INPUT_SEQUENCE_TIMEOUT", "input.sequence_timeout", func(c *Config, v string) error {
		return c.Input.SequenceTimeout.UnmarshalText([]byte(v))
	}},
	{"INPUT_PENDING_POLICY", "input.pending_policy", func(c *Config, v string) error {
		c.Input.PendingPolicy = strings.ToLower(v)
		return nil
	}},
	{"LOOP_TICK_RATE", "loop.tick_rate", func(c *Config, v string) error {
		return c.Loop.TickRate.UnmarshalText([]byte(v))
	}},
	{"LOOP_QUEUE_SIZE", "loop.queue_size", func(c *Config, v string) (err error) {
		c.Loop.QueueSize, err = strconv.Atoi(v)
		return err
	}},
	{"LOOP_SCOPE_BINDINGS_TO_FOCUS", "loop.scope_bindings_to_focus", func(c *Config, v string) (err error) {
		c.Loop.ScopeBindingsToFocus, err = parseBool(v)
		return err
	}},
	{"LOGGING_ENABLED", "logging.enabled", func(c *Config, v string) (err error) {
		c.Logging.Enabled, err = parseBool(v)
		return err
	}},
	{"LOGGING_LEVEL", "logging.level", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"LOGGING_FILE", "logging.file", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"KEYMAP_FILE", "keymap.file", func(c *Config, v string) error {
		c.Keymap.File = v
		return nil
	}},
}

// EnvVars returns the names of the supported environment overrides.
func EnvVars() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

// ApplyEnv overlays TERMKIT_* variables found by lookup on c. Empty
// values count as set. Unparseable values are reported together.
func ApplyEnv(c *Config, lookup LookupFunc) error {
	var errs []error
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, strings.TrimSpace(v)); err != nil {
			errs = append(errs, &ValidationError{
				Path:    s.path,
				Message: "bad value in " + name,
				Value:   v,
			})
		}
	}
	return errors.Join(errs...)
}

// parseBool accepts the same spellings as shell-style flags.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
