package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/termkit/internal/app"
	"github.com/dshills/termkit/internal/backend"
	"github.com/dshills/termkit/internal/config"
	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
	"github.com/dshills/termkit/internal/input/route"
	"github.com/dshills/termkit/internal/logging"
	"github.com/dshills/termkit/internal/script"
)

// RunCmd starts the interactive demo.
type RunCmd struct {
	Timeout  time.Duration `help:"Multi-key sequence timeout, e.g. 750ms"`
	TickRate time.Duration `help:"Event loop tick interval"`
	Policy   string        `help:"Pending exact match policy: wait or eager"`
	Script   string        `help:"Lua script defining on_action/on_focus hooks" type:"existingfile"`
	NoWatch  bool          `help:"Disable hot reload of config and keymap files"`
}

// Run executes the demo.
func (r *RunCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	table, err := buildTable(cfg)
	if err != nil {
		return err
	}

	matcher := input.NewMatcher(table, cfg.MatcherOptions()...)
	fm := focus.NewManager(nil)

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	loop := app.New(term, matcher, fm, cfg.LoopOptions(logger))
	ui, err := newDemo(term, matcher, fm, route.NewRouter(route.Log(logger)), loop.Post)
	if err != nil {
		return err
	}

	handler := app.Handler(ui.handle)
	if r.Script != "" {
		eng := script.New(script.WithLogger(logger))
		defer eng.Close()
		if err := eng.LoadFile(r.Script); err != nil {
			return fmt.Errorf("script %s: %w", r.Script, err)
		}
		handler = eng.Wrap(handler)
	}

	if !r.NoWatch {
		w, err := r.watchBindings(cli, cfg, loop, logger)
		if err != nil {
			logger.Warn("hot reload disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, handler)
}

// apply layers the run flags over cfg.
func (r *RunCmd) apply(cfg *config.Config) error {
	if r.Timeout != 0 {
		cfg.Input.SequenceTimeout = config.Duration(r.Timeout)
	}
	if r.TickRate != 0 {
		cfg.Loop.TickRate = config.Duration(r.TickRate)
	}
	if r.Policy != "" {
		cfg.Input.PendingPolicy = r.Policy
	}
	return cfg.Validate()
}

// watchBindings reloads the config and keymap files whenever they change
// and installs the new bindings and input settings on the loop goroutine.
// Run flags keep precedence over the reloaded files.
func (r *RunCmd) watchBindings(cli *CLI, cfg *config.Config, loop *app.Loop, logger *slog.Logger) (*config.Watcher, error) {
	w, err := config.NewWatcher(func(paths []string) {
		msg := reloadMsg{paths: paths}
		fresh, err := cli.loadConfig()
		if err == nil {
			err = r.apply(fresh)
		}
		if err == nil {
			table, berr := buildTable(fresh)
			if berr == nil {
				msg.bindings = table.Len()
				err = loop.Post(func() {
					if err := reloadMatcher(loop.Matcher(), fresh, table); err != nil {
						logger.Warn("registered bindings dropped on reload", "error", err)
					}
				})
			} else {
				err = berr
			}
		}
		msg.err = err
		logger.Info("bindings reloaded", "paths", paths, "bindings", msg.bindings, "error", err)
		_ = loop.Send(msg)
	}, config.WithErrorHandler(func(err error) {
		logger.Warn("watcher error", "error", err)
	}))
	if err != nil {
		return nil, err
	}

	var files []string
	if cli.Config != "" {
		files = append(files, cli.Config)
	} else if p, err := config.DefaultPath(); err == nil {
		files = append(files, p)
	}
	if cfg.Keymap.File != "" {
		files = append(files, cfg.Keymap.File)
	}

	watched := 0
	for _, f := range files {
		if err := w.Watch(f); err != nil {
			logger.Debug("not watching", "path", f, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		w.Close()
		return nil, errors.New("no watchable files")
	}
	return w, nil
}

// reloadMatcher applies a reloaded configuration to m: the input section
// first, then the rebuilt table. Only the loop goroutine may call it.
func reloadMatcher(m *input.Matcher, cfg *config.Config, table *keymap.Table) error {
	m.SetTimeout(cfg.Input.SequenceTimeout.Std())
	m.SetPolicy(cfg.Policy())
	return m.SetTable(table)
}
