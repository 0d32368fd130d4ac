package treefs

import (
	"maps"
	"slices"
	"strings"
)

// Lazy buffers adds and removals in memory and applies them to the
// wrapped adapter on Persist. Reads see the buffered changes layered over
// the wrapped adapter.
type Lazy struct {
	inner    Adapter
	adds     map[Name]File
	removals map[Name]struct{}
}

func NewLazy(inner Adapter) *Lazy {
	return &Lazy{
		inner:    inner,
		adds:     map[Name]File{},
		removals: map[Name]struct{}{},
	}
}

func (l *Lazy) Add(f File) error {
	l.adds[f.Name()] = f
	delete(l.removals, f.Name())
	return nil
}

func (l *Lazy) Get(name Name) (File, bool) {
	if _, ok := l.removals[name]; ok {
		return nil, false
	}
	if f, ok := l.adds[name]; ok {
		return f, true
	}
	return l.inner.Get(name)
}

func (l *Lazy) Contains(name Name) bool {
	if _, ok := l.removals[name]; ok {
		return false
	}
	if _, ok := l.adds[name]; ok {
		return true
	}
	return l.inner.Contains(name)
}

// Remove drops a pending add of name, if any, and masks name in the
// wrapped adapter until Persist.
func (l *Lazy) Remove(name Name) error {
	delete(l.adds, name)
	l.removals[name] = struct{}{}
	return nil
}

func (l *Lazy) All() ([]File, error) {
	files, err := l.inner.All()
	if err != nil {
		return nil, err
	}

	var out []File
	seen := map[Name]bool{}
	for _, f := range files {
		if _, ok := l.removals[f.Name()]; ok {
			continue
		}
		if pending, ok := l.adds[f.Name()]; ok {
			f = pending
		}
		seen[f.Name()] = true
		out = append(out, f)
	}
	for _, name := range sortedNames(l.adds) {
		if !seen[name] {
			out = append(out, l.adds[name])
		}
	}
	return out, nil
}

// Pending reports whether any change waits for Persist.
func (l *Lazy) Pending() bool { return len(l.adds) > 0 || len(l.removals) > 0 }

// Persist writes buffered adds, then removals of names the wrapped
// adapter holds, and clears the buffers. Changes already applied when an
// error occurs are dropped from the buffers.
func (l *Lazy) Persist() error {
	for _, name := range sortedNames(l.adds) {
		if err := l.inner.Add(l.adds[name]); err != nil {
			return err
		}
		delete(l.adds, name)
	}
	for _, name := range sortedNames(l.removals) {
		if l.inner.Contains(name) {
			if err := l.inner.Remove(name); err != nil {
				return err
			}
		}
		delete(l.removals, name)
	}
	return Persist(l.inner)
}

func sortedNames[V any](m map[Name]V) []Name {
	return slices.SortedFunc(maps.Keys(m), func(a, b Name) int {
		return strings.Compare(a.value, b.value)
	})
}
