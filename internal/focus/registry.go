package focus

import (
	"fmt"
	"sort"
)

// ID identifies a focusable target.
type ID string

// Direction is a navigation direction.
type Direction uint8

const (
	Next Direction = iota
	Previous
)

// String returns "next" or "previous".
func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

type entry struct {
	id      ID
	order   int
	enabled bool
}

// Registry is an ordered set of focusable targets with at most one
// current target. The current target, when there is one, is always
// enabled.
type Registry struct {
	entries []entry // sorted by order
	current ID
	focused bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an enabled target. It does not change the current target.
func (r *Registry) Register(id ID, order int) error {
	for _, e := range r.entries {
		if e.id == id {
			return &RegistrationError{ID: id, Order: order, Err: ErrDuplicateID}
		}
		if e.order == order {
			return &RegistrationError{ID: id, Order: order, Err: fmt.Errorf("%w: %q already uses it", ErrDuplicateOrder, e.id)}
		}
	}

	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].order > order
	})
	r.entries = append(r.entries, entry{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = entry{id: id, order: order, enabled: true}
	return nil
}

// Unregister removes a target and reports whether it was present. If it
// was current, focus moves to the next enabled target in order, wrapping,
// or to none.
func (r *Registry) Unregister(id ID) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)

	if r.focused && r.current == id {
		r.clear()
		// The entry after the removed one now sits at i.
		if j := r.scan(i-1, Next); j >= 0 {
			r.set(j)
		}
	}
	return true
}

// SetEnabled enables or disables a target. Disabling the current target
// moves focus to the next enabled target in order, wrapping, or to none.
func (r *Registry) SetEnabled(id ID, enabled bool) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	r.entries[i].enabled = enabled

	if !enabled && r.focused && r.current == id {
		r.clear()
		if j := r.scan(i, Next); j >= 0 {
			r.set(j)
		}
	}
	return nil
}

// Navigate moves focus one enabled target in direction dir, wrapping at
// the ends, and returns the new current target. With no current target,
// Next selects the lowest-order enabled target and Previous the highest.
// With no enabled targets the result is none.
func (r *Registry) Navigate(dir Direction) (ID, bool) {
	from := -1
	if r.focused {
		from = r.index(r.current)
	} else if dir == Previous {
		from = len(r.entries)
	}

	r.clear()
	if j := r.scan(from, dir); j >= 0 {
		r.set(j)
	}
	return r.Current()
}

// Focus makes id the current target.
func (r *Registry) Focus(id ID) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if !r.entries[i].enabled {
		return fmt.Errorf("%w: %q", ErrDisabled, id)
	}
	r.set(i)
	return nil
}

// Blur clears the current target.
func (r *Registry) Blur() {
	r.clear()
}

// Current returns the current target.
func (r *Registry) Current() (ID, bool) {
	return r.current, r.focused
}

// IsFocused reports whether id is the current target.
func (r *Registry) IsFocused(id ID) bool {
	return r.focused && r.current == id
}

// Enabled reports whether id is registered and enabled.
func (r *Registry) Enabled(id ID) bool {
	i := r.index(id)
	return i >= 0 && r.entries[i].enabled
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id ID) bool {
	return r.index(id) >= 0
}

// IDs returns every registered id in order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.entries)
}

// EnabledCount returns the number of enabled targets.
func (r *Registry) EnabledCount() int {
	n := 0
	for _, e := range r.entries {
		if e.enabled {
			n++
		}
	}
	return n
}

func (r *Registry) index(id ID) int {
	for i, e := range r.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// scan returns the first enabled entry strictly after (Next) or before
// (Previous) position from, wrapping, or -1. from may be -1 or len to
// start at either end. The entry at from itself is visited last.
func (r *Registry) scan(from int, dir Direction) int {
	n := len(r.entries)
	if n == 0 {
		return -1
	}
	for step := 1; step <= n; step++ {
		var j int
		if dir == Next {
			j = ((from+step)%n + n) % n
		} else {
			j = ((from-step)%n + n) % n
		}
		if r.entries[j].enabled {
			return j
		}
	}
	return -1
}

func (r *Registry) set(i int) {
	r.current = r.entries[i].id
	r.focused = true
}

func (r *Registry) clear() {
	r.current = ""
	r.focused = false
}
