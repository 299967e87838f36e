package focus

// Manager routes navigation to the innermost focus trap, or to the base
// registry when no trap is active.
//
// Pushing a trap blurs the registry beneath it and remembers its focus.
// Popping the trap restores that focus if the target is still enabled,
// otherwise focus moves to the first enabled target. At most one target
// across all layers is current at a time.
type Manager struct {
	base  *Registry
	traps []trap
}

type trap struct {
	reg      *Registry
	saved    ID
	hadSaved bool
}

// NewManager creates a manager over base. A nil base gets a fresh registry.
func NewManager(base *Registry) *Manager {
	if base == nil {
		base = NewRegistry()
	}
	return &Manager{base: base}
}

// Base returns the registry beneath all traps.
func (m *Manager) Base() *Registry {
	return m.base
}

// Active returns the registry that navigation currently applies to.
func (m *Manager) Active() *Registry {
	if n := len(m.traps); n > 0 {
		return m.traps[n-1].reg
	}
	return m.base
}

// Depth returns the number of active traps.
func (m *Manager) Depth() int {
	return len(m.traps)
}

// PushTrap confines navigation to reg. If reg has no current target the
// first enabled one is focused.
func (m *Manager) PushTrap(reg *Registry) {
	below := m.Active()
	saved, had := below.Current()
	below.Blur()

	m.traps = append(m.traps, trap{reg: reg, saved: saved, hadSaved: had})
	if _, ok := reg.Current(); !ok {
		reg.Navigate(Next)
	}
}

// PopTrap removes the innermost trap and returns it. It reports false
// when no trap is active.
func (m *Manager) PopTrap() (*Registry, bool) {
	n := len(m.traps)
	if n == 0 {
		return nil, false
	}
	top := m.traps[n-1]
	m.traps = m.traps[:n-1]
	top.reg.Blur()

	below := m.Active()
	if top.hadSaved && below.Enabled(top.saved) {
		_ = below.Focus(top.saved)
	} else {
		below.Navigate(Next)
	}
	return top.reg, true
}

// Navigate moves focus within the active registry.
func (m *Manager) Navigate(dir Direction) (ID, bool) {
	return m.Active().Navigate(dir)
}

// Current returns the current target of the active registry.
func (m *Manager) Current() (ID, bool) {
	return m.Active().Current()
}
