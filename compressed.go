package treefs

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/aweris/treefs/internal/compression"
)

// Compressed stores leaf content compressed in the wrapped adapter and
// decompresses it on read. Names and tree shape are unchanged, and files
// read through it keep the source of the wrapped adapter.
type Compressed struct {
	inner Adapter
	codec compression.Codec
}

func NewCompressed(inner Adapter, opts ...CompressedOption) (*Compressed, error) {
	o := &compressedOptions{algorithm: Zstd, level: compression.LevelDefault}
	for _, opt := range opts {
		opt(o)
	}
	codec, err := compression.New(o.algorithm, o.level)
	if err != nil {
		return nil, fmt.Errorf("create codec: %w", err)
	}
	return &Compressed{inner: inner, codec: codec}, nil
}

func (c *Compressed) Add(f File) error        { return c.inner.Add(c.encode(f)) }
func (c *Compressed) Contains(name Name) bool { return c.inner.Contains(name) }
func (c *Compressed) Remove(name Name) error  { return c.inner.Remove(name) }
func (c *Compressed) Persist() error          { return Persist(c.inner) }

func (c *Compressed) Get(name Name) (File, bool) {
	f, ok := c.inner.Get(name)
	if !ok {
		return nil, false
	}
	return c.decode(f), true
}

func (c *Compressed) All() ([]File, error) {
	files, err := c.inner.All()
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = c.decode(f)
	}
	return files, nil
}

func (c *Compressed) encode(f File) File {
	if d, ok := f.(*Directory); ok {
		return d.mapLazy(c.encode)
	}
	return withContent(f, encodedContent{src: f.Content(), codec: c.codec}, f.MediaType)
}

func (c *Compressed) decode(f File) File {
	if d, ok := f.(*Directory); ok {
		return d.mapLazy(c.decode)
	}
	content := decodedContent{src: f.Content(), codec: c.codec}
	return withContent(f, content, func() MediaType { return DetectMediaType(content) })
}

type encodedContent struct {
	src   Content
	codec compression.Codec
}

func (c encodedContent) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		var buf bytes.Buffer
		w, err := c.codec.NewWriter(&buf)
		if err != nil {
			yield(nil, err)
			return
		}
		flush := func(threshold int) bool {
			if buf.Len() == 0 || buf.Len() < threshold {
				return true
			}
			out := bytes.Clone(buf.Bytes())
			buf.Reset()
			return yield(out, nil)
		}

		for chunk, err := range c.src.Chunks() {
			if err != nil {
				w.Close()
				yield(nil, err)
				return
			}
			if _, err := w.Write(chunk); err != nil {
				w.Close()
				yield(nil, fmt.Errorf("compress: %w", err))
				return
			}
			if !flush(ChunkSize) {
				w.Close()
				return
			}
		}
		if err := w.Close(); err != nil {
			yield(nil, fmt.Errorf("compress: %w", err))
			return
		}
		flush(0)
	}
}

func (c encodedContent) Lines() iter.Seq2[string, error] { return splitLines(c.Chunks()) }
func (c encodedContent) Size() (int64, bool)             { return 0, false }
func (c encodedContent) String() string                  { return readString(c) }
func (c encodedContent) Close() error                    { return closeContent(c.src) }

type decodedContent struct {
	src   Content
	codec compression.Codec
}

func (c decodedContent) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		r := NewReader(c.src)
		defer r.Close()

		dr, err := c.codec.NewReader(r)
		if err != nil {
			yield(nil, fmt.Errorf("decompress: %w", err))
			return
		}
		defer dr.Close()

		readChunks(dr, yield)
	}
}

func (c decodedContent) Lines() iter.Seq2[string, error] { return splitLines(c.Chunks()) }
func (c decodedContent) Size() (int64, bool)             { return 0, false }
func (c decodedContent) String() string                  { return readString(c) }
func (c decodedContent) Close() error                    { return closeContent(c.src) }

func closeContent(c Content) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
