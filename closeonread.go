package treefs

import (
	"io"
	"iter"
)

// CloseOnceRead closes the streams of files it returns as soon as they
// have been read to the end, so walking many files does not pile up open
// handles. Directories are wrapped lazily, child by child.
type CloseOnceRead struct {
	inner Adapter
}

func NewCloseOnceRead(inner Adapter) *CloseOnceRead {
	return &CloseOnceRead{inner: inner}
}

func (c *CloseOnceRead) Add(f File) error        { return c.inner.Add(f) }
func (c *CloseOnceRead) Contains(name Name) bool { return c.inner.Contains(name) }
func (c *CloseOnceRead) Remove(name Name) error  { return c.inner.Remove(name) }
func (c *CloseOnceRead) Persist() error          { return Persist(c.inner) }

func (c *CloseOnceRead) Get(name Name) (File, bool) {
	f, ok := c.inner.Get(name)
	if !ok {
		return nil, false
	}
	return closeOnRead(f), true
}

func (c *CloseOnceRead) All() ([]File, error) {
	files, err := c.inner.All()
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = closeOnRead(f)
	}
	return files, nil
}

func closeOnRead(f File) File {
	if d, ok := f.(*Directory); ok {
		return d.mapLazy(closeOnRead)
	}
	content := f.Content()
	if _, ok := content.(io.Closer); !ok {
		return f
	}
	return withContent(f, closingContent{content}, f.MediaType)
}

// closingContent closes the wrapped content once a read reaches the end.
type closingContent struct {
	Content
}

func (c closingContent) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for chunk, err := range c.Content.Chunks() {
			if err != nil {
				c.Close()
				yield(nil, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
		c.Close()
	}
}

func (c closingContent) Lines() iter.Seq2[string, error] { return splitLines(c.Chunks()) }
func (c closingContent) String() string                  { return readString(c) }

func (c closingContent) Close() error { return closeContent(c.Content) }
