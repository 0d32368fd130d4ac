package treefs

import "github.com/google/uuid"

// Source records where a file was loaded from: the adapter instance and
// the path inside it. Adapters compare sources to skip rewriting
// subtrees they already hold.
type Source struct {
	Adapter uuid.UUID
	Path    string
}

// IsZero reports whether s names no origin.
func (s Source) IsZero() bool { return s.Adapter == uuid.Nil }

// SourceOf returns the source of f, if f was loaded from an adapter and
// has not been modified since.
func SourceOf(f File) (Source, bool) {
	var src Source
	switch f := f.(type) {
	case *Directory:
		src = f.src
	case *leaf:
		src = f.src
	}
	return src, !src.IsZero()
}

func withSource(f File, src Source) File {
	switch f := f.(type) {
	case *Directory:
		c := *f
		c.src = src
		return &c
	case *leaf:
		c := *f
		c.src = src
		return &c
	}
	return f
}
