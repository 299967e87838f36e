package route

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input/keymap"
)

type visit struct {
	id    focus.ID
	phase Phase
}

type testNode struct {
	id       focus.ID
	capture  keymap.Action
	bubble   keymap.Action
	children []Node
	visits   *[]visit
}

func (n *testNode) ID() focus.ID     { return n.id }
func (n *testNode) Children() []Node { return n.children }

func (n *testNode) HandleAction(action keymap.Action, phase Phase) Result {
	*n.visits = append(*n.visits, visit{n.id, phase})
	if phase == Capture && action == n.capture {
		return Handled
	}
	if phase == Bubble && action == n.bubble {
		return Handled
	}
	return Continue
}

// tree builds root > panel > button, sharing one visit log.
func tree() (*testNode, *testNode, *testNode, *[]visit) {
	visits := &[]visit{}
	button := &testNode{id: "button", visits: visits}
	panel := &testNode{id: "panel", visits: visits, children: []Node{button}}
	root := &testNode{id: "root", visits: visits, children: []Node{panel}}
	return root, panel, button, visits
}

func TestPathTo(t *testing.T) {
	root, panel, button, _ := tree()

	path := PathTo(root, "button")
	require.Len(t, path, 3)
	assert.Same(t, root, path[0])
	assert.Same(t, panel, path[1])
	assert.Same(t, button, path[2])

	assert.Len(t, PathTo(root, "root"), 1)
	assert.Nil(t, PathTo(root, "missing"))
	assert.Nil(t, PathTo(root, ""))
	assert.Nil(t, PathTo(nil, "root"))
}

func TestDispatchVisitsCaptureThenBubble(t *testing.T) {
	root, _, _, visits := tree()

	out := NewRouter().Dispatch(root, "noop", "button")
	assert.False(t, out.Handled())
	assert.Equal(t, Continue, out.Result)
	assert.Equal(t, []visit{
		{"root", Capture}, {"panel", Capture}, {"button", Capture},
		{"button", Bubble}, {"panel", Bubble}, {"root", Bubble},
	}, *visits)
}

func TestDispatchHandledInBubble(t *testing.T) {
	root, panel, _, visits := tree()
	panel.bubble = "close"

	out := NewRouter().Dispatch(root, "close", "button")
	assert.True(t, out.Handled())
	assert.Equal(t, focus.ID("panel"), out.HandledBy)
	assert.Equal(t, Bubble, out.Phase)
	assert.NotContains(t, *visits, visit{"root", Bubble}, "handling stops propagation")
}

func TestDispatchCaptureIntercepts(t *testing.T) {
	root, _, button, visits := tree()
	root.capture = "activate"
	button.bubble = "activate"

	out := NewRouter().Dispatch(root, "activate", "button")
	assert.Equal(t, focus.ID("root"), out.HandledBy)
	assert.Equal(t, Capture, out.Phase)
	assert.Equal(t, []visit{{"root", Capture}}, *visits)
}

func TestDispatchWithoutFocusReachesRoot(t *testing.T) {
	root, _, _, visits := tree()
	root.bubble = "quit"

	out := NewRouter().Dispatch(root, "quit", "")
	assert.Equal(t, focus.ID("root"), out.HandledBy)
	assert.Equal(t, []visit{{"root", Capture}, {"root", Bubble}}, *visits)
}

func TestDispatchPath(t *testing.T) {
	root, panel, _, _ := tree()
	panel.bubble = "close"

	out := NewRouter().DispatchPath([]Node{root, panel}, "close")
	assert.Equal(t, focus.ID("panel"), out.HandledBy)

	out = NewRouter().DispatchPath(nil, "close")
	assert.False(t, out.Handled())
	assert.Equal(t, Ignored, out.Result)
}

func TestMiddlewareOrder(t *testing.T) {
	root, _, _, _ := tree()
	var calls []string
	mw := func(name string) Middleware {
		return NewMiddleware(name,
			func(a keymap.Action) (keymap.Action, bool) {
				calls = append(calls, "before "+name)
				return a, true
			},
			func(keymap.Action, Outcome) {
				calls = append(calls, "after "+name)
			})
	}

	NewRouter(mw("a"), mw("b")).Dispatch(root, "x", "")
	assert.Equal(t, []string{"before a", "before b", "after b", "after a"}, calls)
}

func TestMiddlewareRenameAndBlock(t *testing.T) {
	root, _, button, visits := tree()
	button.bubble = "activate"

	r := NewRouter(Rename(map[keymap.Action]keymap.Action{"press": "activate"}))
	out := r.Dispatch(root, "press", "button")
	assert.Equal(t, keymap.Action("activate"), out.Action)
	assert.Equal(t, focus.ID("button"), out.HandledBy)

	*visits = nil
	r.Use(Block("activate"))
	out = r.Dispatch(root, "press", "button")
	assert.True(t, out.Dropped)
	assert.False(t, out.Handled())
	assert.Empty(t, *visits, "dropped actions reach no node")
}

func TestRouterUseReplacesByName(t *testing.T) {
	r := NewRouter(Block("a"), Log(nil))
	require.Equal(t, 2, r.Len())

	r.Use(Block("b"))
	assert.Equal(t, 2, r.Len())

	root, _, _, _ := tree()
	assert.False(t, r.Dispatch(root, "a", "").Dropped)
	assert.True(t, r.Dispatch(root, "b", "").Dropped)

	assert.True(t, r.Remove("block"))
	assert.False(t, r.Remove("block"))
	assert.Equal(t, 1, r.Len())
}

func TestLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	root, _, button, _ := tree()
	button.bubble = "activate"

	NewRouter(Log(logger)).Dispatch(root, "activate", "button")
	assert.Contains(t, buf.String(), "action=activate")
	assert.Contains(t, buf.String(), "handled_by=button")
	assert.Contains(t, buf.String(), "phase=bubble")
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "capture", Capture.String())
	assert.Equal(t, "bubble", Bubble.String())
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "handled", Handled.String())
}
