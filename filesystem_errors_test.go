package treefs

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// failingFs rejects every modification below prefix.
type failingFs struct {
	afero.Fs
	prefix string
}

func (f *failingFs) blocked(name string) bool {
	return f.prefix != "" && strings.HasPrefix(name, f.prefix)
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 && f.blocked(name) {
		return nil, errDiskFull
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *failingFs) Mkdir(name string, perm os.FileMode) error {
	if f.blocked(name) {
		return errDiskFull
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *failingFs) Rename(oldname, newname string) error {
	if f.blocked(newname) {
		return errDiskFull
	}
	return f.Fs.Rename(oldname, newname)
}

func newFailingFilesystem(t *testing.T, prefix string) (*Filesystem, afero.Fs) {
	t.Helper()

	ffs := &failingFs{Fs: afero.NewMemMapFs(), prefix: prefix}
	a, err := NewFilesystem("/store", WithFs(ffs), WithCaseInsensitive(false))
	require.NoError(t, err)
	return a, ffs
}

// brokenTree builds root/{a.txt, broken/inner.txt, z.txt}.
func brokenTree(t *testing.T) *Directory {
	t.Helper()

	broken, err := NewDirectory(MustName("broken"), leafFile("inner.txt", "lost"))
	require.NoError(t, err)
	root, err := NewDirectory(MustName("root"), leafFile("a.txt", "kept"), broken, leafFile("z.txt", "later"))
	require.NoError(t, err)
	return root
}

func TestFilesystem_WriteErrorStopsAndKeepsEarlierSiblings(t *testing.T) {
	t.Parallel()

	a, fs := newFailingFilesystem(t, "/store/root/broken")

	err := a.Add(brokenTree(t))
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "/store/root/broken")

	assert.Equal(t, "kept", readFile(t, fs, "/store/root/a.txt"))
	exists, err := afero.Exists(fs, "/store/root/z.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFilesystem_LeafWriteError(t *testing.T) {
	t.Parallel()

	a, fs := newFailingFilesystem(t, "/store/")

	err := a.Add(leafFile("note.txt", "x"))
	require.ErrorIs(t, err, errDiskFull)

	exists, err := afero.Exists(fs, "/store/note.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFilesystem_MutatingVanishedDirectoryFails(t *testing.T) {
	t.Parallel()

	a, cfs := newMemFilesystem(t)
	require.NoError(t, a.Add(sampleTree(t)))

	foo := getDir(t, a, "foo")
	require.NoError(t, cfs.RemoveAll("/store/foo"))

	added := foo.Add(leafFile("new.txt", "x"))
	assert.NotSame(t, foo, added)
	require.Error(t, added.Err())
	_, ok := SourceOf(added)
	assert.False(t, ok)
	assert.Error(t, a.Add(added))

	exists, err := afero.Exists(cfs, "/store/foo/new.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, a.Add(foo.Remove(MustName("a.txt"))))
}

func TestDecorators_PassWriteErrorsThrough(t *testing.T) {
	t.Parallel()

	tests := map[string]func(Adapter) (Adapter, error){
		"logging": func(inner Adapter) (Adapter, error) { return NewLogging(inner, zerolog.Nop()), nil },
		"lazy":    func(inner Adapter) (Adapter, error) { return NewLazy(inner), nil },
		"compressed": func(inner Adapter) (Adapter, error) {
			return NewCompressed(inner)
		},
		"close-once-read": func(inner Adapter) (Adapter, error) { return NewCloseOnceRead(inner), nil },
	}
	for label, wrap := range tests {
		t.Run(label, func(t *testing.T) {
			t.Parallel()

			inner, _ := newFailingFilesystem(t, "/store/root/broken")
			a, err := wrap(inner)
			require.NoError(t, err)

			err = a.Add(brokenTree(t))
			if err == nil {
				err = Persist(a)
			}
			require.ErrorIs(t, err, errDiskFull)
		})
	}
}
