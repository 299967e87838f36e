package route

import (
	"sync"

	"github.com/dshills/termkit/internal/focus"
	"github.com/dshills/termkit/internal/input/keymap"
)

// Phase is a propagation phase.
type Phase uint8

const (
	// Capture runs from the root toward the focused node.
	Capture Phase = iota
	// Bubble runs from the focused node back to the root.
	Bubble
)

// String returns "capture" or "bubble".
func (p Phase) String() string {
	if p == Bubble {
		return "bubble"
	}
	return "capture"
}

// Result is what a node did with an action.
type Result uint8

const (
	// Ignored means the node does not care about the action.
	Ignored Result = iota
	// Continue means the node looked at the action and let it pass.
	Continue
	// Handled stops propagation.
	Handled
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Handled:
		return "handled"
	}
	return "ignored"
}

// Node is one handler in the routing tree.
type Node interface {
	ID() focus.ID
	HandleAction(action keymap.Action, phase Phase) Result
	Children() []Node
}

// Outcome describes one dispatch.
type Outcome struct {
	// Action is the action delivered to the nodes, after middleware.
	Action keymap.Action
	Result Result
	// HandledBy and Phase are set when Result is Handled.
	HandledBy focus.ID
	Phase     Phase
	// Dropped reports that middleware stopped the action before any
	// node saw it.
	Dropped bool
}

// Handled reports whether some node handled the action.
func (o Outcome) Handled() bool {
	return o.Result == Handled
}

// Router dispatches actions through its middleware chain and then along a
// node path. It is safe to add middleware from other goroutines.
type Router struct {
	mu         sync.RWMutex
	middleware []Middleware
}

// NewRouter creates a router with the given middleware, in order.
func NewRouter(mw ...Middleware) *Router {
	r := &Router{}
	for _, m := range mw {
		r.Use(m)
	}
	return r
}

// Use appends m to the chain. Middleware with the same name as an
// existing entry replaces it in place.
func (r *Router) Use(m Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.middleware {
		if existing.Name() == m.Name() {
			r.middleware[i] = m
			return
		}
	}
	r.middleware = append(r.middleware, m)
}

// Remove drops the named middleware and reports whether it was present.
func (r *Router) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.middleware {
		if m.Name() == name {
			r.middleware = append(r.middleware[:i], r.middleware[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of middleware in the chain.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.middleware)
}

// Dispatch routes action along the path from root to the node with id
// target. When target is empty or not in the tree, only root sees the
// action.
func (r *Router) Dispatch(root Node, action keymap.Action, target focus.ID) Outcome {
	path := PathTo(root, target)
	if len(path) == 0 && root != nil {
		path = []Node{root}
	}
	return r.DispatchPath(path, action)
}

// DispatchPath routes action along an explicit path, root first.
func (r *Router) DispatchPath(path []Node, action keymap.Action) Outcome {
	r.mu.RLock()
	chain := append([]Middleware(nil), r.middleware...)
	r.mu.RUnlock()

	for _, m := range chain {
		next, ok := m.Before(action)
		if !ok {
			return Outcome{Action: action, Dropped: true}
		}
		action = next
	}

	out := propagate(path, action)

	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].After(action, out)
	}
	return out
}

func propagate(path []Node, action keymap.Action) Outcome {
	out := Outcome{Action: action}
	visit := func(n Node, phase Phase) bool {
		res := n.HandleAction(action, phase)
		if res == Handled {
			out.Result = Handled
			out.HandledBy = n.ID()
			out.Phase = phase
			return true
		}
		if res > out.Result {
			out.Result = res
		}
		return false
	}

	for _, n := range path {
		if visit(n, Capture) {
			return out
		}
	}
	for i := len(path) - 1; i >= 0; i-- {
		if visit(path[i], Bubble) {
			return out
		}
	}
	return out
}

// PathTo returns the nodes from root down to the node with id target,
// or nil when target is empty or not found.
func PathTo(root Node, target focus.ID) []Node {
	if root == nil || target == "" {
		return nil
	}
	if root.ID() == target {
		return []Node{root}
	}
	for _, child := range root.Children() {
		if sub := PathTo(child, target); sub != nil {
			return append([]Node{root}, sub...)
		}
	}
	return nil
}
