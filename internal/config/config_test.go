package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/key"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Input.SequenceTimeout.Std())
	assert.Equal(t, 16*time.Millisecond, cfg.Loop.TickRate.Std())
	assert.Equal(t, 256, cfg.Loop.QueueSize)
	assert.Equal(t, input.PolicyWait, cfg.Policy())
	assert.False(t, cfg.Logging.Enabled)
}

func TestLoadReader(t *testing.T) {
	src := `
[input]
sequence_timeout = "750ms"
pending_policy = "eager"

[loop]
tick_rate = "10ms"
scope_bindings_to_focus = true

[bindings.global]
save = "Ctrl+s"
top = ["g g", "Home"]

[bindings.contexts.search]
submit = "Enter"
`
	cfg, err := LoadReader(strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 750*time.Millisecond, cfg.Input.SequenceTimeout.Std())
	assert.Equal(t, input.PolicyEager, cfg.Policy())
	assert.Equal(t, 10*time.Millisecond, cfg.Loop.TickRate.Std())
	assert.Equal(t, 256, cfg.Loop.QueueSize, "absent keys keep defaults")
	assert.True(t, cfg.Loop.ScopeBindingsToFocus)

	b, err := cfg.InlineBindings()
	require.NoError(t, err)
	table, err := b.Build()
	require.NoError(t, err)

	action, ok := table.Lookup(key.MustParseSequence("g g"))
	require.True(t, ok)
	assert.Equal(t, "top", action.String())
	assert.True(t, table.HasContext("search"))
}

func TestLoadReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "[input\nsequence_timeout = 1"},
		{"bad duration", "[input]\nsequence_timeout = \"soon\""},
		{"unknown key", "[input]\ntimeout = \"1s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.src))
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero timeout", func(c *Config) { c.Input.SequenceTimeout = 0 }, "input.sequence_timeout"},
		{"bad policy", func(c *Config) { c.Input.PendingPolicy = "lazy" }, "input.pending_policy"},
		{"zero tick", func(c *Config) { c.Loop.TickRate = 0 }, "loop.tick_rate"},
		{"tick not below timeout", func(c *Config) { c.Loop.TickRate = c.Input.SequenceTimeout }, "loop.tick_rate"},
		{"empty queue", func(c *Config) { c.Loop.QueueSize = 0 }, "loop.queue_size"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TERMKIT_INPUT_SEQUENCE_TIMEOUT": "500ms",
		"TERMKIT_INPUT_PENDING_POLICY":   "EAGER",
		"TERMKIT_LOOP_QUEUE_SIZE":        "32",
		"TERMKIT_LOGGING_ENABLED":        "yes",
		"TERMKIT_LOGGING_LEVEL":          "debug",
		"TERMKIT_KEYMAP_FILE":            "/tmp/keys.yaml",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500*time.Millisecond, cfg.Input.SequenceTimeout.Std())
	assert.Equal(t, input.PolicyEager, cfg.Policy())
	assert.Equal(t, 32, cfg.Loop.QueueSize)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/keys.yaml", cfg.Keymap.File)
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	lookup := func(k string) (string, bool) {
		switch k {
		case "TERMKIT_LOOP_QUEUE_SIZE":
			return "many", true
		case "TERMKIT_LOGGING_ENABLED":
			return "perhaps", true
		}
		return "", false
	}

	err := ApplyEnv(Default(), lookup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "TERMKIT_LOOP_QUEUE_SIZE")
	assert.Contains(t, err.Error(), "TERMKIT_LOGGING_ENABLED")
}

func TestLoadFile(t *testing.T) {
	for _, name := range EnvVars() {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keymap]\nfile = \"keys.toml\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keys.toml"), cfg.Keymap.File)

	t.Setenv("TERMKIT_LOOP_TICK_RATE", "5ms")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.Loop.TickRate.Std(), "env overrides file")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("trace")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoopOptions(t *testing.T) {
	cfg := Default()
	cfg.Loop.ScopeBindingsToFocus = true
	opts := cfg.LoopOptions(nil)

	assert.Equal(t, 16*time.Millisecond, opts.TickRate)
	assert.True(t, opts.ScopeBindingsToFocus)
	assert.Equal(t, "quit", string(opts.QuitAction))
	assert.Len(t, cfg.MatcherOptions(), 2)
}
