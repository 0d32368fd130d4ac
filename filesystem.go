package treefs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when a filesystem root is not a directory.
var ErrNotDirectory = errors.New("treefs: root is not a directory")

// Filesystem stores files in a directory hierarchy. Each directory is a
// directory on disk and each leaf a regular file; media types are sniffed
// from content when read.
//
// Files returned by Get and All are loaded lazily and carry the source of
// this adapter, so adding them back without changes writes nothing.
type Filesystem struct {
	id              uuid.UUID
	fs              afero.Fs
	root            string
	caseInsensitive bool
	logger          zerolog.Logger
}

// NewFilesystem opens root, creating it when absent.
func NewFilesystem(root string, opts ...FilesystemOption) (*Filesystem, error) {
	options := defaultFilesystemOptions()
	for _, opt := range opts {
		opt(options)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	info, err := options.Fs.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	case errors.Is(err, fs.ErrNotExist):
		if err := options.Fs.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("create root: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("stat root: %w", err)
	}

	return &Filesystem{
		id:              uuid.New(),
		fs:              options.Fs,
		root:            abs,
		caseInsensitive: options.CaseInsensitive,
		logger:          options.Logger,
	}, nil
}

// ID identifies this adapter instance in sources.
func (a *Filesystem) ID() uuid.UUID { return a.id }

// Root returns the absolute root path.
func (a *Filesystem) Root() string { return a.root }

// Add writes f. When names match regardless of case, an entry stored
// under another spelling is overwritten in place.
func (a *Filesystem) Add(f File) error {
	name, _ := a.resolve(f.Name())
	return a.persist(f, filepath.Join(a.root, name.String()))
}

func (a *Filesystem) Get(name Name) (File, bool) {
	name, ok := a.resolve(name)
	if !ok {
		return nil, false
	}
	p := filepath.Join(a.root, name.String())
	info, err := a.fs.Stat(p)
	if err != nil {
		return nil, false
	}
	return a.node(name, p, info), true
}

func (a *Filesystem) Contains(name Name) bool {
	name, ok := a.resolve(name)
	if !ok {
		return false
	}
	_, err := a.fs.Stat(filepath.Join(a.root, name.String()))
	return err == nil
}

func (a *Filesystem) Remove(name Name) error {
	name, ok := a.resolve(name)
	if !ok {
		return nil
	}
	return a.removePath(filepath.Join(a.root, name.String()))
}

func (a *Filesystem) All() ([]File, error) {
	var files []File
	for f, err := range a.list(a.root) {
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// resolve maps name to the spelling stored on disk. Case-sensitive
// adapters return name unchanged.
func (a *Filesystem) resolve(name Name) (Name, bool) {
	if !a.caseInsensitive {
		return name, true
	}
	names, err := a.readNames(a.root)
	if err != nil {
		return name, false
	}
	if slices.Contains(names, name.String()) {
		return name, true
	}
	for _, n := range names {
		if candidate, err := NewName(n); err == nil && candidate.EqualFold(name) {
			return candidate, true
		}
	}
	return name, false
}

func (a *Filesystem) persist(f File, p string) error {
	if src, ok := SourceOf(f); ok && src == (Source{Adapter: a.id, Path: p}) {
		a.logger.Trace().Str("path", p).Msg("unchanged, skipping")
		if d, ok := f.(*Directory); ok {
			return a.applyRemovals(d, p)
		}
		return nil
	}

	d, ok := f.(*Directory)
	if !ok {
		return a.writeFile(f, p)
	}
	if err := d.Err(); err != nil {
		return fmt.Errorf("load %s: %w", p, err)
	}

	info, err := a.fs.Stat(p)
	switch {
	case err == nil && !info.IsDir():
		if err := a.fs.Remove(p); err != nil {
			return fmt.Errorf("replace file %s: %w", p, err)
		}
		fallthrough
	case errors.Is(err, fs.ErrNotExist):
		if err := a.fs.Mkdir(p, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", p, err)
		}
		a.logger.Debug().Str("path", p).Msg("directory created")
	case err != nil:
		return fmt.Errorf("stat %s: %w", p, err)
	}

	for child, err := range d.Files() {
		if err != nil {
			return err
		}
		if err := a.persist(child, filepath.Join(p, child.Name().String())); err != nil {
			return err
		}
	}
	return a.applyRemovals(d, p)
}

func (a *Filesystem) applyRemovals(d *Directory, p string) error {
	for _, name := range d.Removed() {
		if err := a.removePath(filepath.Join(p, name.String())); err != nil {
			return err
		}
	}
	return nil
}

func (a *Filesystem) removePath(p string) error {
	if _, err := a.fs.Stat(p); err != nil {
		return nil
	}
	if err := a.fs.RemoveAll(p); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	a.logger.Debug().Str("path", p).Msg("removed")
	return nil
}

// writeFile streams f into a temporary sibling and renames it over p, so
// content read from p itself survives the write.
func (a *Filesystem) writeFile(f File, p string) (err error) {
	if info, err := a.fs.Stat(p); err == nil && info.IsDir() {
		if err := a.fs.RemoveAll(p); err != nil {
			return fmt.Errorf("replace directory %s: %w", p, err)
		}
	}

	tmp, err := afero.TempFile(a.fs, filepath.Dir(p), ".treefs-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = a.fs.Remove(tmp.Name())
		}
	}()

	content := f.Content()
	if c, ok := content.(io.Closer); ok {
		defer c.Close()
	}

	var written int64
	for chunk, cerr := range content.Chunks() {
		if cerr != nil {
			return fmt.Errorf("read %s: %w", f.Name(), cerr)
		}
		n, werr := tmp.Write(chunk)
		written += int64(n)
		if werr != nil {
			return fmt.Errorf("write %s: %w", p, werr)
		}
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p, err)
	}
	if err = a.fs.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", p, err)
	}
	if err = a.fs.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename %s: %w", p, err)
	}

	a.logger.Debug().Str("path", p).Int64("bytes", written).Msg("file written")
	return nil
}

func (a *Filesystem) node(name Name, p string, info fs.FileInfo) File {
	src := Source{Adapter: a.id, Path: p}
	if info.IsDir() {
		return withSource(LazyDirectory(name, a.list(p)), src)
	}

	stream := NewStream(
		func() (io.ReadCloser, error) { return a.fs.Open(p) },
		WithReopen(),
		WithSize(func() (int64, bool) {
			info, err := a.fs.Stat(p)
			if err != nil {
				return 0, false
			}
			return info.Size(), true
		}),
	)
	f := NewFile(name, stream, withMediaTypeFunc(func() MediaType { return a.probe(p) }))
	return withSource(f, src)
}

// probe sniffs the media type from a handle of its own, so the file's
// stream stays unopened.
func (a *Filesystem) probe(p string) MediaType {
	f, err := a.fs.Open(p)
	if err != nil {
		return OctetStream
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return OctetStream
	}
	mt, err := ParseMediaType(detected.String())
	if err != nil {
		return OctetStream
	}
	return mt
}

// list yields the entries of dir sorted by name. The directory handle is
// closed before the first entry is yielded, and every iteration reads the
// directory again.
func (a *Filesystem) list(dir string) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		names, err := a.readNames(dir)
		if err != nil {
			yield(nil, fmt.Errorf("list %s: %w", dir, err))
			return
		}
		for _, n := range names {
			name, err := NewName(n)
			if err != nil {
				a.logger.Warn().Str("dir", dir).Str("entry", n).Msg("skipping entry with invalid name")
				continue
			}
			p := filepath.Join(dir, n)
			info, err := a.fs.Stat(p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				yield(nil, fmt.Errorf("stat %s: %w", p, err))
				return
			}
			if !yield(a.node(name, p, info), nil) {
				return
			}
		}
	}
}

func (a *Filesystem) readNames(dir string) ([]string, error) {
	d, err := a.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	names, err := d.Readdirnames(-1)
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}
