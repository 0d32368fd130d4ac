package treefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_BuffersUntilPersist(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	l := NewLazy(mem)

	require.NoError(t, l.Add(leafFile("a", "1")))
	assert.True(t, l.Contains(MustName("a")))
	assert.False(t, mem.Contains(MustName("a")))
	assert.True(t, l.Pending())

	require.NoError(t, l.Persist())
	assert.True(t, mem.Contains(MustName("a")))
	assert.False(t, l.Pending())
}

func TestLazy_RemovalMasksWrapped(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	require.NoError(t, mem.Add(leafFile("n", "x")))
	l := NewLazy(mem)

	require.NoError(t, l.Remove(MustName("n")))
	assert.False(t, l.Contains(MustName("n")))
	_, ok := l.Get(MustName("n"))
	assert.False(t, ok)
	assert.True(t, mem.Contains(MustName("n")))

	files, err := l.All()
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, l.Persist())
	assert.False(t, mem.Contains(MustName("n")))
}

func TestLazy_RemoveCancelsPendingAdd(t *testing.T) {
	t.Parallel()

	m := &recordingAdapter{Adapter: NewMemory()}
	l := NewLazy(m)

	require.NoError(t, l.Add(leafFile("a", "1")))
	require.NoError(t, l.Remove(MustName("a")))
	assert.Empty(t, m.calls)
	assert.False(t, l.Contains(MustName("a")))

	require.NoError(t, l.Persist())
	assert.Equal(t, []string{"contains a"}, m.calls)
}

func TestLazy_OverlayOverridesWrapped(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	require.NoError(t, mem.Add(leafFile("a", "old")))
	require.NoError(t, mem.Add(leafFile("b", "kept")))
	l := NewLazy(mem)

	require.NoError(t, l.Add(leafFile("a", "new")))
	require.NoError(t, l.Add(leafFile("c", "added")))

	got, ok := l.Get(MustName("a"))
	require.True(t, ok)
	assert.Equal(t, "new", got.Content().String())

	files, err := l.All()
	require.NoError(t, err)
	var bodies []string
	for _, f := range files {
		bodies = append(bodies, f.Name().String()+"="+f.Content().String())
	}
	assert.Equal(t, []string{"a=new", "b=kept", "c=added"}, bodies)
}

func TestLazy_AddAfterRemove(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	require.NoError(t, mem.Add(leafFile("a", "old")))
	l := NewLazy(mem)

	require.NoError(t, l.Remove(MustName("a")))
	require.NoError(t, l.Add(leafFile("a", "new")))
	require.NoError(t, l.Persist())

	got, ok := mem.Get(MustName("a"))
	require.True(t, ok)
	assert.Equal(t, "new", got.Content().String())
}

func TestLazy_PersistChains(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	outer := NewLazy(NewLazy(mem))
	require.NoError(t, outer.Add(leafFile("a", "1")))
	require.NoError(t, Persist(outer))
	assert.True(t, mem.Contains(MustName("a")))
}

// recordingAdapter records calls that reach the wrapped adapter.
type recordingAdapter struct {
	Adapter
	calls []string
}

func (r *recordingAdapter) Add(f File) error {
	r.calls = append(r.calls, "add "+f.Name().String())
	return r.Adapter.Add(f)
}

func (r *recordingAdapter) Remove(name Name) error {
	r.calls = append(r.calls, "remove "+name.String())
	return r.Adapter.Remove(name)
}

func (r *recordingAdapter) Contains(name Name) bool {
	r.calls = append(r.calls, "contains "+name.String())
	return r.Adapter.Contains(name)
}
