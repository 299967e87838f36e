package keymap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termkit/internal/input/key"
)

func bindingOf(action Action, keys string) Binding {
	return Binding{Action: action, Sequence: key.MustParseSequence(keys), Keys: keys}
}

func TestIndexInsertConflict(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(bindingOf("a", "Ctrl+x")))
	require.NoError(t, ix.Insert(bindingOf("a", "Ctrl+x")))

	err := ix.Insert(bindingOf("b", "Ctrl+x"))
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Action("a"), ce.Existing)
	assert.Equal(t, Action("b"), ce.Incoming)
	assert.Equal(t, 1, ix.Len())

	action, _ := ix.Lookup(key.MustParseSequence("Ctrl+x"))
	assert.Equal(t, Action("a"), action)
}

func TestIndexOverride(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(bindingOf("a", "x")))
	require.NoError(t, ix.Override(bindingOf("b", "x")))
	action, ok := ix.Lookup(key.MustParseSequence("x"))
	assert.True(t, ok)
	assert.Equal(t, Action("b"), action)
	assert.Equal(t, 1, ix.Len())
}

func TestIndexRejectsEmpty(t *testing.T) {
	ix := NewIndex()
	assert.ErrorIs(t, ix.Insert(Binding{Action: "a"}), ErrEmptySequence)
	assert.ErrorIs(t, ix.Insert(Binding{Sequence: key.MustParseSequence("a")}), ErrEmptyAction)
	assert.Equal(t, Match{}, ix.Resolve(key.Sequence{}))
}

func TestIndexResolveEmptyPrefix(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(bindingOf("a", "x")))
	m := ix.Resolve(key.Sequence{})
	assert.False(t, m.Exact)
	assert.True(t, m.Extensible)
}

func TestIndexCloneIsDeep(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(bindingOf("a", "g g")))
	c := ix.Clone()
	require.NoError(t, c.Insert(bindingOf("b", "g i")))

	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, 2, c.Len())
	_, ok := ix.Lookup(key.MustParseSequence("g i"))
	assert.False(t, ok)
}

func TestIndexBindingsSorted(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(bindingOf("quit", "q")))
	require.NoError(t, ix.Insert(bindingOf("quit", "Ctrl+q")))
	require.NoError(t, ix.Insert(bindingOf("focus_next", "Tab")))

	got := ix.Bindings()
	require.Len(t, got, 3)
	assert.Equal(t, "Tab -> focus_next", got[0].String())
	assert.Equal(t, "Ctrl+q -> quit", got[1].String())
	assert.Equal(t, "q -> quit", got[2].String())
}
