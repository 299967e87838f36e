package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsDebouncedChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(path, []byte("# v1\n"), 0o644))

	changes := make(chan []string, 4)
	w, err := NewWatcher(func(paths []string) { changes <- paths }, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(path))
	require.NoError(t, w.Watch(path), "watching twice is harmless")

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, w.Files())

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("# v2\n"), 0o644))
	}

	select {
	case got := <-changes:
		assert.Equal(t, []string{abs}, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(func([]string) {})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), "x.toml")), ErrWatcherClosed)
}
