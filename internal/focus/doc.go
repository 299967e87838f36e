// Package focus tracks which widget receives keyboard input.
//
// A Registry holds focusable targets ordered by a unique order index.
// Navigation moves cyclically over enabled targets and never fails:
//
//	r := focus.NewRegistry()
//	_ = r.Register("name", 0)
//	_ = r.Register("email", 1)
//	_ = r.Register("submit", 2)
//	r.Navigate(focus.Next) // name
//	r.Navigate(focus.Next) // email
//
// A Manager layers focus traps over a base registry so a modal can
// confine navigation to its own targets and give focus back when it
// closes.
//
// Neither type is safe for concurrent use; both are owned by the event
// loop.
package focus
