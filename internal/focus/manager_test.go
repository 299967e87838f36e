package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerTrap(t *testing.T) {
	m := NewManager(newABC(t))
	require.NoError(t, m.Base().Focus("B"))

	modal := NewRegistry()
	require.NoError(t, modal.Register("ok", 0))
	require.NoError(t, modal.Register("cancel", 1))

	m.PushTrap(modal)
	assert.Equal(t, 1, m.Depth())
	assert.Same(t, modal, m.Active())

	id, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, ID("ok"), id, "trap focuses its first target")
	_, ok = m.Base().Current()
	assert.False(t, ok, "base is blurred while trapped")

	id, _ = m.Navigate(Next)
	assert.Equal(t, ID("cancel"), id)
	id, _ = m.Navigate(Next)
	assert.Equal(t, ID("ok"), id, "navigation stays inside the trap")

	popped, ok := m.PopTrap()
	assert.True(t, ok)
	assert.Same(t, modal, popped)
	id, _ = m.Current()
	assert.Equal(t, ID("B"), id, "focus restored")
	_, ok = modal.Current()
	assert.False(t, ok)

	_, ok = m.PopTrap()
	assert.False(t, ok)
}

func TestManagerPopWhenSavedTargetGone(t *testing.T) {
	m := NewManager(newABC(t))
	require.NoError(t, m.Base().Focus("B"))

	modal := NewRegistry()
	require.NoError(t, modal.Register("ok", 0))
	m.PushTrap(modal)

	require.NoError(t, m.Base().SetEnabled("B", false))
	m.PopTrap()

	id, _ := m.Current()
	assert.Equal(t, ID("A"), id)
}

func TestManagerNestedTraps(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Base().Register("main", 0))
	m.Navigate(Next)

	outer := NewRegistry()
	require.NoError(t, outer.Register("o1", 0))
	require.NoError(t, outer.Register("o2", 1))
	inner := NewRegistry()
	require.NoError(t, inner.Register("i1", 0))

	m.PushTrap(outer)
	m.Navigate(Next)
	m.PushTrap(inner)
	assert.Equal(t, 2, m.Depth())

	m.PopTrap()
	id, _ := m.Current()
	assert.Equal(t, ID("o2"), id)

	m.PopTrap()
	id, _ = m.Current()
	assert.Equal(t, ID("main"), id)
}
