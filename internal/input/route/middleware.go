package route

import (
	"log/slog"

	"github.com/dshills/termkit/internal/input/keymap"
)

// Middleware wraps every dispatch of a Router.
type Middleware interface {
	// Name identifies the middleware in its chain.
	Name() string

	// Before sees the action before any node does. It returns the action
	// to continue with, which may be renamed, or false to drop it.
	Before(action keymap.Action) (keymap.Action, bool)

	// After sees the outcome of a dispatch that was not dropped.
	After(action keymap.Action, out Outcome)
}

// BeforeFunc is the Before half of a middleware.
type BeforeFunc func(action keymap.Action) (keymap.Action, bool)

// AfterFunc is the After half of a middleware.
type AfterFunc func(action keymap.Action, out Outcome)

type funcMiddleware struct {
	name   string
	before BeforeFunc
	after  AfterFunc
}

// NewMiddleware builds a Middleware from functions. Either may be nil.
func NewMiddleware(name string, before BeforeFunc, after AfterFunc) Middleware {
	return &funcMiddleware{name: name, before: before, after: after}
}

func (m *funcMiddleware) Name() string { return m.name }

func (m *funcMiddleware) Before(action keymap.Action) (keymap.Action, bool) {
	if m.before == nil {
		return action, true
	}
	return m.before(action)
}

func (m *funcMiddleware) After(action keymap.Action, out Outcome) {
	if m.after != nil {
		m.after(action, out)
	}
}

// Rename rewrites actions found in aliases and passes the rest through.
func Rename(aliases map[keymap.Action]keymap.Action) Middleware {
	return NewMiddleware("rename", func(action keymap.Action) (keymap.Action, bool) {
		if to, ok := aliases[action]; ok {
			return to, true
		}
		return action, true
	}, nil)
}

// Block drops the listed actions.
func Block(actions ...keymap.Action) Middleware {
	blocked := make(map[keymap.Action]bool, len(actions))
	for _, a := range actions {
		blocked[a] = true
	}
	return NewMiddleware("block", func(action keymap.Action) (keymap.Action, bool) {
		return action, !blocked[action]
	}, nil)
}

// Log records every dispatch outcome at debug level.
func Log(logger *slog.Logger) Middleware {
	if logger == nil {
		return NewMiddleware("log", nil, nil)
	}
	return NewMiddleware("log", nil, func(action keymap.Action, out Outcome) {
		logger.Debug("action routed",
			"action", string(action),
			"result", out.Result.String(),
			"handled_by", string(out.HandledBy),
			"phase", out.Phase.String())
	})
}
