// Package logging builds the session logger.
//
// A terminal UI owns stdout and stderr, so logs go to a file: either the
// configured path or a fresh <user cache dir>/termkit/logs/<uuid>.log.
// Old session files beyond MaxSessionFiles are removed.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/termkit/internal/config"
)

// MaxSessionFiles bounds the number of session logs kept in the log dir.
const MaxSessionFiles = 50

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// New returns a logger for cfg and the closer for its file. When logging
// is disabled the logger discards and the closer does nothing.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	if !cfg.Enabled {
		return Discard(), nopCloser{}, nil
	}

	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.File
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		_ = rotate(dir, MaxSessionFiles)
		path = filepath.Join(dir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := NewWriter(f, level)
	logger.Info("logging initialized", "log_file", path, "level", level.String())
	return logger, f, nil
}

// NewWriter returns a text logger writing to w at level.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Dir returns the session log directory.
func Dir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "termkit", "logs"), nil
}

// rotate removes the oldest .log files in dir so that a new one fits
// under limit.
func rotate(dir string, limit int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".log" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{filepath.Join(dir, e.Name()), info.ModTime()})
	}
	if len(files) < limit {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, f := range files[:len(files)-limit+1] {
		_ = os.Remove(f.path)
	}
	return nil
}
