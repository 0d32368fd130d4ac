package treefs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Directory is an immutable tree node. Mutations return a new Directory
// that shares every untouched child with the receiver and appends to its
// modification log.
//
// A directory built by LazyDirectory reads its children on first access.
// Failures while reading are kept and reported by Err. A failed directory
// behaves as empty; its mutations return a new directory that keeps the
// failure and drops the source, so persisting it reports the error.
type Directory struct {
	name Name
	load func() (*entries, error)
	log  []Event
	src  Source
}

type entries struct {
	names []Name
	files map[Name]File
}

// NewDirectory returns a directory holding files. Two files with the same
// name yield a DuplicateError.
func NewDirectory(name Name, files ...File) (*Directory, error) {
	e, err := collect(name, filesOf(files))
	if err != nil {
		return nil, err
	}
	return &Directory{name: name, load: loaded(e)}, nil
}

// EmptyDirectory returns a directory with no children.
func EmptyDirectory(name Name) *Directory {
	return &Directory{name: name, load: loaded(&entries{files: map[Name]File{}})}
}

// LazyDirectory returns a directory whose children come from files. The
// sequence is consumed once, on first access, and checked for duplicates
// then.
func LazyDirectory(name Name, files iter.Seq2[File, error]) *Directory {
	return &Directory{
		name: name,
		load: sync.OnceValues(func() (*entries, error) { return collect(name, files) }),
	}
}

func collect(dir Name, files iter.Seq2[File, error]) (*entries, error) {
	e := &entries{files: map[Name]File{}}
	for f, err := range files {
		if err != nil {
			return nil, err
		}
		if _, dup := e.files[f.Name()]; dup {
			return nil, &DuplicateError{Directory: dir, Name: f.Name()}
		}
		e.names = append(e.names, f.Name())
		e.files[f.Name()] = f
	}
	return e, nil
}

func filesOf(files []File) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		for _, f := range files {
			if !yield(f, nil) {
				return
			}
		}
	}
}

func loaded(e *entries) func() (*entries, error) {
	return func() (*entries, error) { return e, nil }
}

func (e *entries) with(f File) *entries {
	next := &entries{names: slices.Clip(e.names), files: make(map[Name]File, len(e.files)+1)}
	for k, v := range e.files {
		next.files[k] = v
	}
	if _, ok := next.files[f.Name()]; !ok {
		next.names = append(next.names, f.Name())
	}
	next.files[f.Name()] = f
	return next
}

func (e *entries) without(name Name) *entries {
	next := &entries{files: make(map[Name]File, len(e.files))}
	for _, n := range e.names {
		if n != name {
			next.names = append(next.names, n)
			next.files[n] = e.files[n]
		}
	}
	return next
}

func (d *Directory) Name() Name           { return d.name }
func (d *Directory) MediaType() MediaType { return DirectoryType }

// Content lists the names of the children, one per line.
func (d *Directory) Content() Content { return dirContent{d} }

// Err returns the error met while reading the children, if any.
func (d *Directory) Err() error {
	_, err := d.load()
	return err
}

func (d *Directory) entries() *entries {
	e, err := d.load()
	if err != nil {
		return &entries{}
	}
	return e
}

// Add returns a directory holding f, replacing any entry of the same
// name. Adding the very file already present returns d itself.
func (d *Directory) Add(f File) *Directory {
	e, err := d.load()
	if err != nil {
		return d.fail(err, Added{File: f})
	}
	if cur, ok := e.files[f.Name()]; ok && identical(cur, f) {
		return d
	}
	return d.derive(e.with(f), Added{File: f})
}

// Remove returns a directory without the entry called name. Removing an
// absent name returns d itself.
func (d *Directory) Remove(name Name) *Directory {
	e, err := d.load()
	if err != nil {
		return d.fail(err, Removed{Name: name})
	}
	if _, ok := e.files[name]; !ok {
		return d
	}
	return d.derive(e.without(name), Removed{Name: name})
}

func (d *Directory) derive(e *entries, events ...Event) *Directory {
	return &Directory{name: d.name, load: loaded(e), log: append(slices.Clip(d.log), events...)}
}

func (d *Directory) fail(err error, ev Event) *Directory {
	return &Directory{
		name: d.name,
		load: func() (*entries, error) { return nil, err },
		log:  append(slices.Clip(d.log), ev),
	}
}

// Get returns the child called name.
func (d *Directory) Get(name Name) (File, bool) {
	f, ok := d.entries().files[name]
	return f, ok
}

func (d *Directory) Contains(name Name) bool {
	_, ok := d.Get(name)
	return ok
}

// Len returns the number of children.
func (d *Directory) Len() int { return len(d.entries().names) }

// Names returns the child names in insertion order.
func (d *Directory) Names() []Name { return slices.Clone(d.entries().names) }

// Files yields the children in insertion order, or the load error.
func (d *Directory) Files() iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		e, err := d.load()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, n := range e.names {
			if !yield(e.files[n], nil) {
				return
			}
		}
	}
}

func (d *Directory) Foreach(fn func(File)) error {
	for f, err := range d.Files() {
		if err != nil {
			return err
		}
		fn(f)
	}
	return nil
}

func (d *Directory) Filter(keep func(File) bool) (*Directory, error) {
	return d.FlatMap(func(f File) []File {
		if keep(f) {
			return []File{f}
		}
		return nil
	})
}

func (d *Directory) Map(fn func(File) File) (*Directory, error) {
	return d.FlatMap(func(f File) []File { return []File{fn(f)} })
}

// FlatMap replaces every child by the files fn returns for it. Results
// sharing a name yield a DuplicateError. Children that disappear are
// logged as removed and new or changed ones as added.
func (d *Directory) FlatMap(fn func(File) []File) (*Directory, error) {
	e, err := d.load()
	if err != nil {
		return nil, err
	}
	next, err := collect(d.name, func(yield func(File, error) bool) {
		for _, n := range e.names {
			for _, f := range fn(e.files[n]) {
				if !yield(f, nil) {
					return
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, n := range e.names {
		if _, ok := next.files[n]; !ok {
			events = append(events, Removed{Name: n})
		}
	}
	for _, n := range next.names {
		if cur, ok := e.files[n]; !ok || !identical(cur, next.files[n]) {
			events = append(events, Added{File: next.files[n]})
		}
	}
	if len(events) == 0 {
		return d, nil
	}
	return d.derive(next, events...), nil
}

// Reduce folds the children of d into a single value.
func Reduce[T any](d *Directory, init T, fn func(T, File) T) (T, error) {
	acc := init
	for f, err := range d.Files() {
		if err != nil {
			return acc, err
		}
		acc = fn(acc, f)
	}
	return acc, nil
}

// ReplaceAt adds f to the descendant directory reached through path and
// rebuilds every directory on the way. An empty path adds f to d. Every
// segment of path must exist and be a directory.
func (d *Directory) ReplaceAt(path []Name, f File) (*Directory, error) {
	chain := make([]*Directory, 0, len(path))
	cur := d
	for i, seg := range path {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		child, ok := cur.Get(seg)
		if !ok {
			return nil, fmt.Errorf("replace at %s: %w", joinNames(path[:i+1], "/"), ErrMissingPath)
		}
		sub, ok := child.(*Directory)
		if !ok {
			return nil, fmt.Errorf("replace at %s: %w", joinNames(path[:i+1], "/"), ErrNotADirectory)
		}
		chain = append(chain, cur)
		cur = sub
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	next := cur.Add(f)
	for i := len(chain) - 1; i >= 0; i-- {
		next = chain[i].Add(next)
	}
	return next, nil
}

// Modifications returns the log of changes made since d was created or
// loaded, oldest first.
func (d *Directory) Modifications() []Event { return slices.Clone(d.log) }

// Removed returns the names whose latest logged change is a removal and
// that are not children of d.
func (d *Directory) Removed() []Name {
	last := map[Name]Event{}
	var order []Name
	for _, ev := range d.log {
		if _, seen := last[ev.Target()]; !seen {
			order = append(order, ev.Target())
		}
		last[ev.Target()] = ev
	}
	var removed []Name
	for _, n := range order {
		if _, ok := last[n].(Removed); ok && !d.Contains(n) {
			removed = append(removed, n)
		}
	}
	return removed
}

func (d *Directory) rename(name Name) *Directory {
	return &Directory{name: name, load: d.load, log: d.log}
}

// mapLazy wraps every child with fn on first access, keeping the name,
// log and source of d.
func (d *Directory) mapLazy(fn func(File) File) *Directory {
	return &Directory{
		name: d.name,
		log:  d.log,
		src:  d.src,
		load: sync.OnceValues(func() (*entries, error) {
			e, err := d.load()
			if err != nil {
				return nil, err
			}
			next := &entries{names: e.names, files: make(map[Name]File, len(e.files))}
			for n, f := range e.files {
				next.files[n] = fn(f)
			}
			return next, nil
		}),
	}
}

// identical reports reference equality without panicking on
// uncomparable implementations.
func identical(a, b File) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

func joinNames(names []Name, sep string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

type dirContent struct{ d *Directory }

func (c dirContent) text() Content {
	return Text(joinNames(c.d.entries().names, "\n"))
}

func (c dirContent) Chunks() iter.Seq2[[]byte, error] { return c.text().Chunks() }
func (c dirContent) Lines() iter.Seq2[string, error]  { return c.text().Lines() }
func (c dirContent) Size() (int64, bool)              { return c.text().Size() }
func (c dirContent) String() string                   { return c.text().String() }
