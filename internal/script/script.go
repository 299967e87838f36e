// Package script runs Lua hooks for matched actions and focus changes.
//
// A script defines any of these globals:
//
//	function on_action(name) ... end
//	function on_focus(from, to) ... end
//
// Returning the string "exit" from a hook asks the event loop to shut
// down. Any other return value, or no hook at all, continues. Scripts
// run with the base, table, string and math libraries only, and may log
// through termkit.log(msg).
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/termkit/internal/app"
)

// Hook names.
const (
	HookAction = "on_action"
	HookFocus  = "on_focus"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 100 * time.Millisecond

// ErrClosed is returned after Close.
var ErrClosed = errors.New("script: engine closed")

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-call time limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger receives termkit.log output and hook failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine owns one sandboxed Lua state. It is safe for concurrent use;
// calls are serialized.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	logger  *slog.Logger
	closed  bool
}

// New creates an engine with an empty script.
func New(opts ...Option) *Engine {
	e := &Engine{
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("termkit", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"log": e.luaLog,
	}))

	e.L = L
	return e
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.logger.Info("script", "msg", L.CheckString(1))
	return 0
}

// LoadFile runs the Lua file at path, defining its hooks.
func (e *Engine) LoadFile(path string) error {
	return e.do(func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadString runs src, defining its hooks.
func (e *Engine) LoadString(src string) error {
	return e.do(func(L *lua.LState) error { return L.DoString(src) })
}

// Has reports whether the script defines the named hook.
func (e *Engine) Has(hook string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	return e.L.GetGlobal(hook).Type() == lua.LTFunction
}

// OnAction calls on_action(name).
func (e *Engine) OnAction(name string) (app.Directive, error) {
	return e.call(HookAction, lua.LString(name))
}

// OnFocus calls on_focus(from, to). A side with no focus is passed as
// nil.
func (e *Engine) OnFocus(from, to string) (app.Directive, error) {
	return e.call(HookFocus, optString(from), optString(to))
}

func optString(s string) lua.LValue {
	if s == "" {
		return lua.LNil
	}
	return lua.LString(s)
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		e.L.Close()
	}
	return nil
}

func (e *Engine) call(hook string, args ...lua.LValue) (app.Directive, error) {
	var ret lua.LValue = lua.LNil
	err := e.do(func(L *lua.LState) error {
		fn := L.GetGlobal(hook)
		if fn.Type() != lua.LTFunction {
			return nil
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		return app.Continue, fmt.Errorf("%s: %w", hook, err)
	}
	if s, ok := ret.(lua.LString); ok && string(s) == "exit" {
		return app.Exit, nil
	}
	return app.Continue, nil
}

// do runs fn under the lock with the call deadline installed.
func (e *Engine) do(fn func(L *lua.LState) error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(e.L)
}

// Wrap returns a handler that runs the hooks before next. An action or
// focus event whose hook returns "exit" stops there; hook errors are
// logged and otherwise ignored.
func (e *Engine) Wrap(next app.Handler) app.Handler {
	return func(ev app.Event) app.Directive {
		var (
			d   = app.Continue
			err error
		)
		switch ev.Kind {
		case app.EventAction:
			d, err = e.OnAction(string(ev.Action))
		case app.EventFocus:
			d, err = e.OnFocus(string(ev.Focus.From), string(ev.Focus.To))
		}
		if err != nil {
			e.logger.Warn("script hook failed", "event", ev.Kind.String(), "error", err)
		}
		if d == app.Exit {
			return app.Exit
		}
		return next(ev)
	}
}
