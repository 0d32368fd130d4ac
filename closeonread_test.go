package treefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseOnceRead_ClosesAtEOF(t *testing.T) {
	t.Parallel()

	inner, _ := newMemFilesystem(t)
	require.NoError(t, inner.Add(sampleTree(t)))
	c := NewCloseOnceRead(inner)

	foo := getDir(t, c, "foo")
	a := child(t, foo, "a.txt")
	stream := a.Content().(closingContent).Content.(*Stream)

	assert.Equal(t, "hi", a.Content().String())
	assert.False(t, stream.IsOpen())

	// reading again reopens and closes again
	assert.Equal(t, "hi", a.Content().String())
	assert.False(t, stream.IsOpen())
}

func TestCloseOnceRead_EarlyStopKeepsOpen(t *testing.T) {
	t.Parallel()

	inner, _ := newMemFilesystem(t)
	require.NoError(t, inner.Add(leafFile("a.txt", "line one\nline two\n")))
	c := NewCloseOnceRead(inner)

	f, ok := c.Get(MustName("a.txt"))
	require.True(t, ok)
	content := f.Content().(closingContent)
	for line, err := range content.Lines() {
		require.NoError(t, err)
		assert.Equal(t, "line one", line)
		break
	}
	assert.True(t, content.Content.(*Stream).IsOpen())
	require.NoError(t, content.Close())
	assert.False(t, content.Content.(*Stream).IsOpen())
}

func TestCloseOnceRead_KeepsSource(t *testing.T) {
	t.Parallel()

	inner, cfs := newMemFilesystem(t)
	require.NoError(t, inner.Add(sampleTree(t)))
	c := NewCloseOnceRead(inner)

	foo := getDir(t, c, "foo")
	src, ok := SourceOf(foo)
	require.True(t, ok)
	assert.Equal(t, "/store/foo", src.Path)

	bar := child(t, foo, "bar").(*Directory)
	_, ok = SourceOf(child(t, bar, "b.txt"))
	assert.True(t, ok)

	cfs.writes = 0
	require.NoError(t, c.Add(foo))
	assert.Zero(t, cfs.writes)
}

func TestCloseOnceRead_All(t *testing.T) {
	t.Parallel()

	inner, _ := newMemFilesystem(t)
	require.NoError(t, inner.Add(leafFile("x", "1")))
	require.NoError(t, inner.Add(leafFile("y", "2")))

	files, err := NewCloseOnceRead(inner).All()
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		content := f.Content().(closingContent)
		_ = content.String()
		assert.False(t, content.Content.(*Stream).IsOpen())
	}
}
