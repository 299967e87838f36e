package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termkit/internal/app"
	"github.com/dshills/termkit/internal/backend"
	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
	"github.com/dshills/termkit/internal/input/route"
)

func newTestDemo(t *testing.T, mw ...route.Middleware) (*demo, *backend.NullBackend) {
	t.Helper()
	table, err := keymap.Defaults().Build()
	require.NoError(t, err)

	out := backend.NewNullBackend(60, 12)
	d, err := newDemo(out, input.NewMatcher(table), focus.NewManager(nil), route.NewRouter(mw...), func(fn func()) error {
		fn()
		return nil
	})
	require.NoError(t, err)
	return d, out
}

func TestDemoInitialDraw(t *testing.T) {
	d, out := newTestDemo(t)

	assert.Equal(t, app.Continue, d.handle(app.Event{Kind: app.EventTick}))
	assert.Equal(t, 1, out.Shows())
	assert.True(t, strings.HasPrefix(out.Row(firstRow), "  [ Alpha ]"))
	assert.True(t, out.StyleAt(2, firstRow).Reverse, "focused widget is highlighted")
	assert.Contains(t, out.Row(11), "ready")

	d.handle(app.Event{Kind: app.EventTick})
	assert.Equal(t, 1, out.Shows(), "clean ticks do not redraw")
}

func TestDemoActivateAndToggle(t *testing.T) {
	d, out := newTestDemo(t)
	reg := d.focus.Base()

	d.handle(app.Event{Kind: app.EventAction, Action: keymap.ActionActivate})
	assert.Contains(t, out.Row(11), "Alpha pressed 1 time(s)")

	require.NoError(t, reg.Focus("toggle"))
	d.handle(app.Event{Kind: app.EventAction, Action: keymap.ActionActivate})
	assert.False(t, reg.Enabled("beta"))
	assert.True(t, out.StyleAt(2, firstRow+1).Dim)
	assert.Contains(t, out.Row(firstRow+3), "[ ] beta enabled")

	d.handle(app.Event{Kind: app.EventAction, Action: keymap.ActionActivate})
	assert.True(t, reg.Enabled("beta"))
}

func TestDemoMouseFocus(t *testing.T) {
	d, _ := newTestDemo(t)

	d.handle(app.Event{Kind: app.EventTerminal, Terminal: backend.Event{
		Type: backend.EventMouse, MouseButton: backend.MouseLeft, MouseX: 3, MouseY: firstRow + 2,
	}})
	id, ok := d.focus.Current()
	require.True(t, ok)
	assert.Equal(t, focus.ID("gamma"), id)

	d.handle(app.Event{Kind: app.EventTerminal, Terminal: backend.Event{
		Type: backend.EventMouse, MouseButton: backend.MouseLeft, MouseY: 0,
	}})
	id, _ = d.focus.Current()
	assert.Equal(t, focus.ID("gamma"), id, "clicks outside widgets are ignored")
}

func TestDemoStatusMessages(t *testing.T) {
	d, out := newTestDemo(t)

	d.handle(app.Event{Kind: app.EventFocus, Focus: app.FocusChange{From: "alpha", To: "beta", HasFrom: true, HasTo: true}})
	assert.Contains(t, out.Row(11), "focus: alpha -> beta")

	d.handle(app.Event{Kind: app.EventAction, Action: "save"})
	assert.Contains(t, out.Row(11), "action: save")

	d.handle(app.Event{Kind: app.EventMessage, Message: reloadMsg{bindings: 7}})
	assert.Contains(t, out.Row(11), "reloaded 7 binding(s)")

	assert.Equal(t, app.Exit, d.handle(app.Event{Kind: app.EventError, Err: app.ErrSourceClosed}))
}

func TestDemoRoutesActionsThroughFocus(t *testing.T) {
	var routed []route.Outcome
	d, out := newTestDemo(t,
		route.NewMiddleware("record", nil, func(_ keymap.Action, o route.Outcome) {
			routed = append(routed, o)
		}),
		route.Block("delete"))

	d.handle(app.Event{Kind: app.EventAction, Action: keymap.ActionActivate})
	require.Len(t, routed, 1)
	assert.Equal(t, focus.ID("alpha"), routed[0].HandledBy)
	assert.Equal(t, route.Bubble, routed[0].Phase)

	d.handle(app.Event{Kind: app.EventAction, Action: "save"})
	require.Len(t, routed, 2)
	assert.Equal(t, panelID, routed[1].HandledBy, "unhandled actions bubble to the panel")

	d.handle(app.Event{Kind: app.EventAction, Action: "delete"})
	assert.Len(t, routed, 2, "blocked actions are not routed")
	assert.Contains(t, out.Row(11), "blocked: delete")

	d.focus.Base().Blur()
	d.handle(app.Event{Kind: app.EventAction, Action: keymap.ActionActivate})
	require.Len(t, routed, 3)
	assert.Equal(t, panelID, routed[2].HandledBy, "without focus only the panel sees the action")
	assert.Contains(t, out.Row(11), "action: activate")
}
