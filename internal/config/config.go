package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/termkit/internal/app"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
)

// Config is the complete termkit configuration.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
	Keymap  KeymapConfig  `toml:"keymap"`

	// Bindings holds inline bindings in keymap file layout: a "global"
	// table and a "contexts" table of named tables.
	Bindings map[string]any `toml:"bindings"`
}

// InputConfig configures the sequence matcher.
type InputConfig struct {
	SequenceTimeout Duration `toml:"sequence_timeout"`
	PendingPolicy   string   `toml:"pending_policy"`
}

// LoopConfig configures the event loop.
type LoopConfig struct {
	TickRate             Duration `toml:"tick_rate"`
	QueueSize            int      `toml:"queue_size"`
	ScopeBindingsToFocus bool     `toml:"scope_bindings_to_focus"`
}

// LoggingConfig configures the session log.
type LoggingConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
	// File overrides the per-session log file under the user cache dir.
	File string `toml:"file"`
}

// KeymapConfig points at an external keymap file.
type KeymapConfig struct {
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SequenceTimeout: Duration(input.DefaultSequenceTimeout),
			PendingPolicy:   input.PolicyWait.String(),
		},
		Loop: LoopConfig{
			TickRate:  Duration(app.DefaultTickRate),
			QueueSize: app.DefaultQueueSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if c.Input.SequenceTimeout <= 0 {
		fail("input.sequence_timeout", "must be positive", c.Input.SequenceTimeout)
	}
	if _, ok := input.ParsePendingPolicy(c.Input.PendingPolicy); !ok {
		fail("input.pending_policy", `must be "wait" or "eager"`, c.Input.PendingPolicy)
	}
	switch {
	case c.Loop.TickRate <= 0:
		fail("loop.tick_rate", "must be positive", c.Loop.TickRate)
	case c.Input.SequenceTimeout > 0 && c.Loop.TickRate >= c.Input.SequenceTimeout:
		fail("loop.tick_rate", "must be shorter than input.sequence_timeout", c.Loop.TickRate)
	}
	if c.Loop.QueueSize < 1 {
		fail("loop.queue_size", "must be at least 1", c.Loop.QueueSize)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// Policy returns the configured pending policy, defaulting to wait.
func (c *Config) Policy() input.PendingPolicy {
	p, _ := input.ParsePendingPolicy(c.Input.PendingPolicy)
	return p
}

// MatcherOptions returns matcher options for the input section.
func (c *Config) MatcherOptions() []input.Option {
	return []input.Option{
		input.WithTimeout(c.Input.SequenceTimeout.Std()),
		input.WithPolicy(c.Policy()),
	}
}

// LoopOptions returns event loop options for the loop section.
func (c *Config) LoopOptions(logger *slog.Logger) app.Options {
	opts := app.DefaultOptions()
	opts.TickRate = c.Loop.TickRate.Std()
	opts.QueueSize = c.Loop.QueueSize
	opts.ScopeBindingsToFocus = c.Loop.ScopeBindingsToFocus
	opts.Logger = logger
	return opts
}

// InlineBindings returns a builder holding the [bindings] section. It is
// empty when the section is absent.
func (c *Config) InlineBindings() (*keymap.Builder, error) {
	if len(c.Bindings) == 0 {
		return keymap.NewBuilder(), nil
	}
	b, err := keymap.FromMap(c.Bindings)
	if err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	return b, nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidValue, s)
}

// Duration is a time.Duration that reads and writes Go duration strings
// such as "750ms" or "1s".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidValue, text)
	}
	*d = Duration(v)
	return nil
}
