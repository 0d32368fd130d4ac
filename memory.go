package treefs

import (
	"maps"
	"slices"
	"strings"
)

// Memory keeps files in a map. Files are stored as given.
type Memory struct {
	files map[Name]File
}

func NewMemory() *Memory {
	return &Memory{files: map[Name]File{}}
}

func (m *Memory) Add(f File) error {
	m.files[f.Name()] = f
	return nil
}

func (m *Memory) Get(name Name) (File, bool) {
	f, ok := m.files[name]
	return f, ok
}

func (m *Memory) Contains(name Name) bool {
	_, ok := m.files[name]
	return ok
}

func (m *Memory) Remove(name Name) error {
	delete(m.files, name)
	return nil
}

// All returns the files sorted by name.
func (m *Memory) All() ([]File, error) {
	return slices.SortedFunc(maps.Values(m.files), func(a, b File) int {
		return strings.Compare(a.Name().String(), b.Name().String())
	}), nil
}
