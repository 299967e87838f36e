// Package route delivers matched actions to a tree of handlers.
//
// An action travels the path from the root node to the focused node in
// two phases. During Capture it visits the root first and the focused
// node last, so containers can intercept an action before the focused
// widget sees it. During Bubble it visits the focused node first and the
// root last, which is where most handling happens. The first node that
// reports Handled stops propagation.
//
// A Router runs every dispatch through a chain of Middleware. Before
// hooks run in the order they were added and may rename or drop the
// action; After hooks run in reverse order and see the outcome.
//
// Routing is synchronous and runs on the caller's goroutine. In an
// application built on app.Loop that is the loop goroutine.
package route
