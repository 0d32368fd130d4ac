// Package compression provides the streaming codecs used by the
// compressing adapter.
package compression

import (
	"fmt"
	"io"
)

type Algorithm string

const (
	Zstd Algorithm = "zstd"
	LZ4  Algorithm = "lz4"
)

// Level trades speed for ratio. Codecs map it onto their own scales.
type Level int

const (
	LevelFastest Level = 1
	LevelDefault Level = 2
	LevelBest    Level = 3
)

// Codec wraps writers and readers with one compression format.
type Codec interface {
	Algorithm() Algorithm
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// New returns the codec for alg.
func New(alg Algorithm, level Level) (Codec, error) {
	switch alg {
	case Zstd, "":
		return zstdCodec{level: level}, nil
	case LZ4:
		return lz4Codec{level: level}, nil
	default:
		return nil, fmt.Errorf("unknown compression algorithm %q", alg)
	}
}
