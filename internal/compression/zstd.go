package compression

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

type zstdCodec struct {
	level Level
}

func (zstdCodec) Algorithm() Algorithm { return Zstd }

func (c zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	var encoderLevel zstd.EncoderLevel
	switch c.level {
	case LevelFastest:
		encoderLevel = zstd.SpeedFastest
	case LevelBest:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
}

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}
