package treefs

import (
	"io"
	"iter"
)

// Opener opens the reader behind a Stream.
type Opener func() (io.ReadCloser, error)

// Stream is Content read from an external resource. The resource is
// opened on first read and stays open until Close. A closed stream fails
// further reads unless it was built with WithReopen, in which case the
// next read from the start opens it again.
type Stream struct {
	open   Opener
	size   func() (int64, bool)
	reopen bool

	rc     io.ReadCloser
	closed bool
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithReopen lets a closed stream reopen when read again from the start.
func WithReopen() StreamOption {
	return func(s *Stream) { s.reopen = true }
}

// WithSize reports the stream length without opening it.
func WithSize(size func() (int64, bool)) StreamOption {
	return func(s *Stream) { s.size = size }
}

// NewStream returns lazy content backed by open.
func NewStream(open Opener, opts ...StreamOption) *Stream {
	s := &Stream{open: open}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsOpen reports whether the stream currently holds an open reader.
func (s *Stream) IsOpen() bool { return s.rc != nil }

func (s *Stream) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		r, err := s.rewind()
		if err != nil {
			yield(nil, err)
			return
		}
		readChunks(r, yield)
	}
}

func (s *Stream) Lines() iter.Seq2[string, error] { return splitLines(s.Chunks()) }

func (s *Stream) Size() (int64, bool) {
	if s.size == nil {
		return 0, false
	}
	return s.size()
}

func (s *Stream) String() string { return readString(s) }

// Close releases the underlying reader. Closing twice is a no-op.
func (s *Stream) Close() error {
	s.closed = true
	if s.rc == nil {
		return nil
	}
	rc := s.rc
	s.rc = nil
	return rc.Close()
}

// rewind positions the stream at its start, opening it if needed.
func (s *Stream) rewind() (io.Reader, error) {
	if s.rc == nil {
		if s.closed && !s.reopen {
			return nil, ErrStreamClosed
		}
		return s.openReader()
	}
	if seeker, ok := s.rc.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return s.rc, nil
	}
	if err := s.rc.Close(); err != nil {
		return nil, err
	}
	s.rc = nil
	return s.openReader()
}

func (s *Stream) openReader() (io.Reader, error) {
	rc, err := s.open()
	if err != nil {
		return nil, err
	}
	s.rc = rc
	s.closed = false
	return rc, nil
}
