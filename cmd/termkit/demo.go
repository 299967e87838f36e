package main

import (
	"errors"
	"fmt"

	"github.com/dshills/termkit/internal/app"
	"github.com/dshills/termkit/internal/backend"
	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input"
	"github.com/dshills/termkit/internal/input/keymap"
	"github.com/dshills/termkit/internal/input/route"
)

// widget is a focusable row in the demo. Widgets are leaves of the
// routing tree under the demo panel.
type widget interface {
	route.Node
	Label() string
}

type button struct {
	id      focus.ID
	label   string
	presses int
	report  func(string)
}

func (b *button) ID() focus.ID           { return b.id }
func (b *button) Label() string          { return "[ " + b.label + " ]" }
func (b *button) Children() []route.Node { return nil }

func (b *button) HandleAction(action keymap.Action, phase route.Phase) route.Result {
	if phase != route.Bubble || action != keymap.ActionActivate {
		return route.Ignored
	}
	b.presses++
	b.report(fmt.Sprintf("%s pressed %d time(s)", b.label, b.presses))
	return route.Handled
}

// toggle enables and disables another target.
type toggle struct {
	id     focus.ID
	target focus.ID
	reg    *focus.Registry
	off    bool
	report func(string)
}

func (t *toggle) ID() focus.ID           { return t.id }
func (t *toggle) Children() []route.Node { return nil }

func (t *toggle) Label() string {
	mark := "x"
	if t.off {
		mark = " "
	}
	return fmt.Sprintf("[%s] %s enabled", mark, t.target)
}

func (t *toggle) HandleAction(action keymap.Action, phase route.Phase) route.Result {
	if phase != route.Bubble || action != keymap.ActionActivate {
		return route.Ignored
	}
	t.off = !t.off
	if err := t.reg.SetEnabled(t.target, !t.off); err != nil {
		t.report(err.Error())
		return route.Handled
	}
	if t.off {
		t.report(fmt.Sprintf("%s disabled", t.target))
	} else {
		t.report(fmt.Sprintf("%s enabled", t.target))
	}
	return route.Handled
}

// panel is the routing root. It reports actions that no widget handled.
type panel struct {
	d *demo
}

const panelID focus.ID = "panel"

func (p panel) ID() focus.ID { return panelID }

func (p panel) Children() []route.Node {
	nodes := make([]route.Node, len(p.d.widgets))
	for i, w := range p.d.widgets {
		nodes[i] = w
	}
	return nodes
}

func (p panel) HandleAction(action keymap.Action, phase route.Phase) route.Result {
	if phase != route.Bubble {
		return route.Ignored
	}
	p.d.setStatus("action: " + string(action))
	return route.Handled
}

// reloadMsg reports a hot reload of the binding table.
type reloadMsg struct {
	paths    []string
	bindings int
	err      error
}

const (
	titleRow   = 0
	firstRow   = 2
	pendingGap = 2 // rows between the last widget and the key line
)

// demo renders the widgets and reacts to loop events. All methods run on
// the loop goroutine.
type demo struct {
	out     backend.Backend
	matcher *input.Matcher
	focus   *focus.Manager
	post    func(func()) error
	router  *route.Router
	widgets []widget

	status string
	dirty  bool
}

func newDemo(out backend.Backend, m *input.Matcher, f *focus.Manager, r *route.Router, post func(func()) error) (*demo, error) {
	if r == nil {
		r = route.NewRouter()
	}
	reg := f.Base()
	d := &demo{
		out:     out,
		matcher: m,
		focus:   f,
		post:    post,
		router:  r,
		status:  "ready",
		dirty:   true,
	}
	d.widgets = []widget{
		&button{id: "alpha", label: "Alpha", report: d.setStatus},
		&button{id: "beta", label: "Beta", report: d.setStatus},
		&button{id: "gamma", label: "Gamma", report: d.setStatus},
		&toggle{id: "toggle", target: "beta", reg: reg, report: d.setStatus},
	}
	for i, w := range d.widgets {
		if err := reg.Register(w.ID(), i); err != nil {
			return nil, err
		}
	}
	if err := reg.Focus(d.widgets[0].ID()); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *demo) handle(ev app.Event) app.Directive {
	switch ev.Kind {
	case app.EventTerminal:
		d.terminal(ev)

	case app.EventAction:
		d.route(ev.Action)

	case app.EventFocus:
		d.setStatus(fmt.Sprintf("focus: %s -> %s", orNone(ev.Focus.From), orNone(ev.Focus.To)))

	case app.EventMessage:
		if msg, ok := ev.Message.(reloadMsg); ok {
			if msg.err != nil {
				d.setStatus("reload failed: " + msg.err.Error())
			} else {
				d.setStatus(fmt.Sprintf("reloaded %d binding(s)", msg.bindings))
			}
		}

	case app.EventError:
		if errors.Is(ev.Err, app.ErrSourceClosed) {
			return app.Exit
		}
		d.setStatus("input error: " + ev.Err.Error())

	case app.EventShutdown:
		return app.Continue
	}

	if d.dirty {
		d.draw()
	}
	return app.Continue
}

func (d *demo) terminal(ev app.Event) {
	t := ev.Terminal
	switch t.Type {
	case backend.EventKey:
		switch ev.Match.Kind {
		case input.NoMatch:
			d.setStatus("unbound: " + t.Key.String())
		default:
			d.dirty = true
		}

	case backend.EventMouse:
		if t.MouseButton != backend.MouseLeft {
			return
		}
		if w := d.widgetAt(t.MouseY); w != nil {
			id := w.ID()
			_ = d.post(func() {
				_ = d.focus.Active().Focus(id)
			})
		}

	case backend.EventResize:
		d.dirty = true
	}
}

// route sends action from the panel to the focused widget and back.
func (d *demo) route(action keymap.Action) {
	target, _ := d.focus.Current()
	out := d.router.Dispatch(panel{d: d}, action, target)
	if out.Dropped {
		d.setStatus("blocked: " + string(action))
	}
}

func (d *demo) setStatus(s string) {
	d.status = s
	d.dirty = true
}

func (d *demo) widgetAt(y int) widget {
	i := y - firstRow
	if i < 0 || i >= len(d.widgets) {
		return nil
	}
	return d.widgets[i]
}

func (d *demo) draw() {
	d.dirty = false
	d.out.Clear()
	_, h := d.out.Size()

	backend.DrawText(d.out, 0, titleRow, "termkit: Tab/Shift+Tab move, Enter activates, q quits", backend.Style{Bold: true})

	reg := d.focus.Active()
	for i, w := range d.widgets {
		var style backend.Style
		switch {
		case !reg.Enabled(w.ID()):
			style.Dim = true
		case reg.IsFocused(w.ID()):
			style.Reverse = true
		}
		backend.DrawText(d.out, 2, firstRow+i, w.Label(), style)
	}

	keys := "keys: "
	if p := d.matcher.Pending(); !p.IsEmpty() {
		keys += p.String() + " ..."
	}
	backend.DrawText(d.out, 0, firstRow+len(d.widgets)+pendingGap, keys, backend.Style{})
	if h > 0 {
		backend.DrawText(d.out, 0, h-1, d.status, backend.Style{Underline: true})
	}
	d.out.Show()
}

func orNone(id focus.ID) string {
	if id == "" {
		return "none"
	}
	return string(id)
}
