package treefs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adapterCase struct {
	name        string
	new         func(t *testing.T) Adapter
	directories bool
}

func adapterCases() []adapterCase {
	filesystem := func(t *testing.T) Adapter {
		a, _ := newMemFilesystem(t)
		return a
	}
	compressed := func(t *testing.T) Adapter {
		c, err := NewCompressed(filesystem(t))
		require.NoError(t, err)
		return c
	}

	return []adapterCase{
		{name: "memory", new: func(*testing.T) Adapter { return NewMemory() }, directories: true},
		{name: "filesystem", new: filesystem, directories: true},
		{name: "hashed/memory", new: func(*testing.T) Adapter { return NewHashed(NewMemory()) }},
		{name: "hashed/filesystem", new: func(t *testing.T) Adapter { return NewHashed(filesystem(t)) }},
		{name: "lazy/filesystem", new: func(t *testing.T) Adapter { return NewLazy(filesystem(t)) }, directories: true},
		{name: "cache/filesystem", new: func(t *testing.T) Adapter { return NewCache(filesystem(t)) }, directories: true},
		{name: "close-once-read/filesystem", new: func(t *testing.T) Adapter { return NewCloseOnceRead(filesystem(t)) }, directories: true},
		{name: "logging/memory", new: func(*testing.T) Adapter { return NewLogging(NewMemory(), zerolog.Nop()) }, directories: true},
		{name: "compressed/filesystem", new: compressed, directories: true},
	}
}

func TestAdapters_UnknownNames(t *testing.T) {
	t.Parallel()

	for _, tc := range adapterCases() {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := tc.new(t)
			f, ok := a.Get(MustName("unknown"))
			assert.False(t, ok)
			assert.Nil(t, f)
			assert.False(t, a.Contains(MustName("unknown")))
			require.NoError(t, a.Remove(MustName("unknown")))
			require.NoError(t, Persist(a))

			all, err := a.All()
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestAdapters_LeafRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range adapterCases() {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := tc.new(t)
			f := leafFile("notes.txt", "remember the milk")
			require.NoError(t, a.Add(f))
			require.NoError(t, Persist(a))

			assert.True(t, a.Contains(f.Name()))
			got, ok := a.Get(f.Name())
			require.True(t, ok)
			assert.Equal(t, f.Name(), got.Name())
			assert.Equal(t, "remember the milk", got.Content().String())

			require.NoError(t, a.Remove(f.Name()))
			require.NoError(t, Persist(a))
			assert.False(t, a.Contains(f.Name()))
		})
	}
}

func TestAdapters_AddRemoveAdd(t *testing.T) {
	t.Parallel()

	for _, tc := range adapterCases() {
		if !tc.directories {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := tc.new(t)
			f := leafFile("f.txt", "present")
			tree := EmptyDirectory(MustName("root")).Add(f).Remove(f.Name()).Add(f)
			require.NoError(t, a.Add(tree))
			require.NoError(t, Persist(a))

			root := getDir(t, a, "root")
			assert.True(t, root.Contains(f.Name()))
			assert.Equal(t, "present", child(t, root, "f.txt").Content().String())
		})
	}
}

func TestAdapters_RemoveAddRemove(t *testing.T) {
	t.Parallel()

	for _, tc := range adapterCases() {
		if !tc.directories {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := tc.new(t)
			n := MustName("f.txt")
			require.NoError(t, a.Add(EmptyDirectory(MustName("root")).Add(leafFile("f.txt", "old"))))
			require.NoError(t, Persist(a))

			tree := getDir(t, a, "root").Remove(n).Add(leafFile("f.txt", "new")).Remove(n)
			require.NoError(t, a.Add(tree))
			require.NoError(t, Persist(a))

			assert.False(t, getDir(t, a, "root").Contains(n))
		})
	}
}

func TestAdapters_NestedScenario(t *testing.T) {
	t.Parallel()

	for _, tc := range adapterCases() {
		if !tc.directories {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := tc.new(t)
			require.NoError(t, a.Add(sampleTree(t)))
			require.NoError(t, Persist(a))

			foo := getDir(t, a, "foo")
			assert.Equal(t, "text/directory", foo.MediaType().String())
			assert.Equal(t, "hi", child(t, foo, "a.txt").Content().String())
			bar, ok := child(t, foo, "bar").(*Directory)
			require.True(t, ok)
			assert.Equal(t, "lo", child(t, bar, "b.txt").Content().String())
		})
	}
}
