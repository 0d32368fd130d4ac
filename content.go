package treefs

import (
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"
)

// ChunkSize is the block size content is streamed in.
const ChunkSize = 8 << 10

// Content is the body of a file. Implementations are lazy: nothing is read
// until one of the sequences is iterated, and every iteration starts from
// the beginning.
type Content interface {
	Chunks() iter.Seq2[[]byte, error]
	Lines() iter.Seq2[string, error]
	// Size returns the length in bytes when it is known without reading.
	Size() (int64, bool)
	String() string
}

type bytesContent []byte

// Bytes returns in-memory content holding b. The slice is not copied.
func Bytes(b []byte) Content { return bytesContent(b) }

// Text returns in-memory content holding s.
func Text(s string) Content { return bytesContent(s) }

// OfLines returns in-memory content holding the lines joined by newlines.
func OfLines(lines ...string) Content { return Text(strings.Join(lines, "\n")) }

func (b bytesContent) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for rest := []byte(b); len(rest) > 0; {
			n := min(len(rest), ChunkSize)
			if !yield(rest[:n:n], nil) {
				return
			}
			rest = rest[n:]
		}
	}
}

func (b bytesContent) Lines() iter.Seq2[string, error] { return splitLines(b.Chunks()) }
func (b bytesContent) Size() (int64, bool)             { return int64(len(b)), true }
func (b bytesContent) String() string                  { return string(b) }

// ReadAll drains c and returns its bytes.
func ReadAll(c Content) ([]byte, error) {
	var buf bytes.Buffer
	if n, ok := c.Size(); ok {
		buf.Grow(int(n))
	}
	for chunk, err := range c.Chunks() {
		if err != nil {
			return buf.Bytes(), err
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

// NewReader adapts c to an io.Reader. Close releases the iteration early.
func NewReader(c Content) io.ReadCloser {
	next, stop := iter.Pull2(c.Chunks())
	return &chunkReader{next: next, stop: stop}
}

type chunkReader struct {
	next func() ([]byte, error, bool)
	stop func()
	buf  []byte
	err  error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		chunk, err, ok := r.next()
		switch {
		case !ok:
			r.err = io.EOF
		case err != nil:
			r.err = err
		default:
			r.buf = chunk
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *chunkReader) Close() error {
	r.stop()
	r.buf = nil
	if r.err == nil {
		r.err = io.ErrClosedPipe
	}
	return nil
}

// readChunks yields r in blocks of at most ChunkSize bytes.
func readChunks(r io.Reader, yield func([]byte, error) bool) {
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !yield(chunk, nil) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, err)
			return
		}
	}
}

func splitLines(chunks iter.Seq2[[]byte, error]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var pending []byte
		for chunk, err := range chunks {
			if err != nil {
				yield("", err)
				return
			}
			pending = append(pending, chunk...)
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				if !yield(string(bytes.TrimSuffix(pending[:i], []byte{'\r'})), nil) {
					return
				}
				pending = pending[i+1:]
			}
		}
		if len(pending) > 0 {
			yield(string(pending), nil)
		}
	}
}

func readString(c Content) string {
	b, _ := ReadAll(c)
	return string(b)
}
