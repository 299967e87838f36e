package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termkit/internal/config"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/key"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildTableLayers(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings = map[string]any{
		"global": map[string]any{"save": "Ctrl+s"},
	}
	cfg.Keymap.File = writeFile(t, "keys.yaml", "global:\n  quit: \"Ctrl+x Ctrl+c\"\n")

	table, err := buildTable(cfg)
	require.NoError(t, err)

	action, ok := table.Lookup(key.MustParseSequence("Ctrl+s"))
	require.True(t, ok)
	assert.Equal(t, "save", action.String())

	action, ok = table.Lookup(key.MustParseSequence("Ctrl+x Ctrl+c"))
	require.True(t, ok)
	assert.Equal(t, "quit", action.String())

	_, ok = table.Lookup(key.MustParseSequence("q"))
	assert.False(t, ok, "the keymap file replaces the default quit keys")

	_, ok = table.Lookup(key.MustParseSequence("Tab"))
	assert.True(t, ok, "untouched defaults survive")
}

func TestCheckKeymap(t *testing.T) {
	good := writeFile(t, "good.toml", "[global]\nsave = \"Ctrl+s\"\n\n[contexts.list]\nopen = \"Enter\"\n")
	var out bytes.Buffer
	require.NoError(t, checkKeymap(&out, good))
	assert.Contains(t, out.String(), "ok, 2 binding(s) in 1 context(s)")

	bad := writeFile(t, "bad.toml", "[global]\nsave = \"Ctrl+s\"\nopen = \"Ctrl+s\"\nfly = \"Hyper+x\"\n")
	out.Reset()
	err := checkKeymap(&out, bad)
	require.ErrorIs(t, err, ErrInvalidKeymap)
	assert.Contains(t, err.Error(), "2 problem(s)")
}

func TestKeyRows(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings = map[string]any{
		"contexts": map[string]any{
			"list": map[string]any{"open": "Enter"},
		},
	}
	table, err := buildTable(cfg)
	require.NoError(t, err)

	rows := keyRows(table, "")
	var quit, open *keyRow
	for i := range rows {
		switch rows[i].Action {
		case "quit":
			quit = &rows[i]
		case "open":
			open = &rows[i]
		}
	}
	require.NotNil(t, quit)
	require.NotNil(t, open)
	assert.ElementsMatch(t, []string{"q", "Ctrl+q", "Ctrl+c"}, quit.Keys)
	assert.Equal(t, "list", open.Context)

	var buf bytes.Buffer
	require.NoError(t, printKeysJSON(&buf, keyRows(table, "list")))
	var decoded []keyRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, r := range decoded {
		assert.Equal(t, "list", r.Context)
	}

	buf.Reset()
	require.NoError(t, printKeysTable(&buf, rows))
	assert.Contains(t, buf.String(), "ACTION")
}

func TestRunCmdApply(t *testing.T) {
	cfg := config.Default()
	r := RunCmd{Policy: "eager"}
	require.NoError(t, r.apply(cfg))
	assert.Equal(t, "eager", cfg.Input.PendingPolicy)

	r = RunCmd{Policy: "sometimes"}
	assert.ErrorIs(t, r.apply(config.Default()), config.ErrInvalidValue)
}

func TestReloadMatcherAppliesInputSettings(t *testing.T) {
	cfg := config.Default()
	table, err := buildTable(cfg)
	require.NoError(t, err)
	m := input.NewMatcher(table, cfg.MatcherOptions()...)

	fresh := config.Default()
	fresh.Input.SequenceTimeout = config.Duration(250 * time.Millisecond)
	fresh.Input.PendingPolicy = "eager"
	fresh.Bindings = map[string]any{"save": "Ctrl+s"}
	reloaded, err := buildTable(fresh)
	require.NoError(t, err)

	require.NoError(t, reloadMatcher(m, fresh, reloaded))
	assert.Equal(t, 250*time.Millisecond, m.Timeout())
	assert.Equal(t, input.PolicyEager, m.Policy())

	res := m.Process(key.MustParse("Ctrl+s"), time.Now())
	assert.Equal(t, input.Matched, res.Kind)
	assert.Equal(t, "save", res.Action.String())
}
