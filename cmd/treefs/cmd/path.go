package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aweris/treefs"
)

var errNotFound = errors.New("not found")

// splitPath parses a slash separated store path. Empty segments are
// ignored, so "" and "/" denote the store root.
func splitPath(p string) ([]treefs.Name, error) {
	var names []treefs.Name
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		n, err := treefs.NewName(seg)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

// lookup walks path from the store root.
func lookup(store treefs.Adapter, path []treefs.Name) (treefs.File, error) {
	if len(path) == 0 {
		return nil, errors.New("empty path")
	}
	f, ok := store.Get(path[0])
	if !ok {
		return nil, fmt.Errorf("%s: %w", path[0], errNotFound)
	}
	for i, seg := range path[1:] {
		d, ok := f.(*treefs.Directory)
		if !ok {
			return nil, fmt.Errorf("%s: %w", joinPath(path[:i+1]), treefs.ErrNotADirectory)
		}
		if f, ok = d.Get(seg); !ok {
			return nil, fmt.Errorf("%s: %w", joinPath(path[:i+2]), errNotFound)
		}
	}
	return f, nil
}

// lookupDir is lookup for a path that must name a directory.
func lookupDir(store treefs.Adapter, path []treefs.Name) (*treefs.Directory, error) {
	f, err := lookup(store, path)
	if err != nil {
		return nil, err
	}
	d, ok := f.(*treefs.Directory)
	if !ok {
		return nil, fmt.Errorf("%s: %w", joinPath(path), treefs.ErrNotADirectory)
	}
	return d, nil
}

// removeAt returns top without the entry rel points to, relative to top.
func removeAt(top *treefs.Directory, rel []treefs.Name) (*treefs.Directory, error) {
	if len(rel) == 1 {
		return top.Remove(rel[0]), nil
	}
	parent := top
	for _, seg := range rel[:len(rel)-1] {
		f, ok := parent.Get(seg)
		if !ok {
			return nil, fmt.Errorf("%s: %w", seg, errNotFound)
		}
		if parent, ok = f.(*treefs.Directory); !ok {
			return nil, fmt.Errorf("%s: %w", seg, treefs.ErrNotADirectory)
		}
	}
	last := rel[len(rel)-1]
	if !parent.Contains(last) {
		return nil, fmt.Errorf("%s: %w", joinPath(rel), errNotFound)
	}
	return top.ReplaceAt(rel[:len(rel)-2], parent.Remove(last))
}

func joinPath(path []treefs.Name) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = n.String()
	}
	return strings.Join(parts, "/")
}
