package compression

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

type lz4Codec struct {
	level Level
}

func (lz4Codec) Algorithm() Algorithm { return LZ4 }

func (c lz4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	var level lz4.CompressionLevel
	switch c.level {
	case LevelFastest:
		level = lz4.Fast
	case LevelBest:
		level = lz4.Level9
	default:
		level = lz4.Level4
	}

	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(level), lz4.ConcurrencyOption(1)); err != nil {
		return nil, err
	}
	return zw, nil
}

func (lz4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
