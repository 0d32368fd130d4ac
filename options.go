package treefs

import (
	"runtime"

	"github.com/aweris/treefs/internal/compression"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FilesystemOptions configures NewFilesystem.
type FilesystemOptions struct {
	Fs              afero.Fs
	CaseInsensitive bool
	Logger          zerolog.Logger
}

// FilesystemOption is a functional option for configuring NewFilesystem.
type FilesystemOption func(*FilesystemOptions)

func defaultFilesystemOptions() *FilesystemOptions {
	return &FilesystemOptions{
		Fs:              afero.NewOsFs(),
		CaseInsensitive: HostCaseInsensitive(),
		Logger:          zerolog.Nop(),
	}
}

// HostCaseInsensitive reports the usual case policy of the host OS. It
// does not inspect the mounted filesystem.
func HostCaseInsensitive() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
}

// WithFs sets the filesystem backing the adapter.
func WithFs(fs afero.Fs) FilesystemOption {
	return func(o *FilesystemOptions) { o.Fs = fs }
}

// WithCaseInsensitive sets whether names match regardless of case.
func WithCaseInsensitive(enabled bool) FilesystemOption {
	return func(o *FilesystemOptions) { o.CaseInsensitive = enabled }
}

// WithFilesystemLogger sets the logger persistence decisions go to.
func WithFilesystemLogger(logger zerolog.Logger) FilesystemOption {
	return func(o *FilesystemOptions) { o.Logger = logger }
}

// HashAlgorithm selects the digest used to shard names.
type HashAlgorithm string

const (
	HashSHA1   HashAlgorithm = "sha1"
	HashBLAKE3 HashAlgorithm = "blake3"
)

// HashedOption is a functional option for configuring NewHashed.
type HashedOption func(*Hashed)

// WithHashAlgorithm sets the digest used to shard names.
func WithHashAlgorithm(alg HashAlgorithm) HashedOption {
	return func(h *Hashed) { h.hash = hasher(alg) }
}

// CacheOption is a functional option for configuring NewCache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	size int
}

// WithCacheSize bounds the number of cached files. Zero means unbounded.
func WithCacheSize(n int) CacheOption {
	return func(o *cacheOptions) {
		if n >= 0 {
			o.size = n
		}
	}
}

type (
	CompressionAlgorithm = compression.Algorithm
	CompressionLevel     = compression.Level
)

const (
	Zstd = compression.Zstd
	LZ4  = compression.LZ4
)

// CompressedOption is a functional option for configuring NewCompressed.
type CompressedOption func(*compressedOptions)

type compressedOptions struct {
	algorithm CompressionAlgorithm
	level     CompressionLevel
}

// WithCompression sets the codec. The default is zstd.
func WithCompression(alg CompressionAlgorithm) CompressedOption {
	return func(o *compressedOptions) { o.algorithm = alg }
}

// WithCompressionLevel sets the level: 1 fastest, 2 default, 3 best.
func WithCompressionLevel(level int) CompressedOption {
	return func(o *compressedOptions) { o.level = CompressionLevel(level) }
}
