package treefs

// Adapter stores files under their names. Absence is not an error: Get
// and Contains report it, and removing an absent name does nothing.
// Adding a file replaces whatever the adapter held under its name,
// including a whole directory.
//
// Adapters are not safe for concurrent use.
type Adapter interface {
	Add(f File) error
	Get(name Name) (File, bool)
	Contains(name Name) bool
	Remove(name Name) error
	All() ([]File, error)
}

// Persister is implemented by adapters that buffer changes until
// Persist is called.
type Persister interface {
	Persist() error
}

// Persist flushes a if it buffers changes.
func Persist(a Adapter) error {
	if p, ok := a.(Persister); ok {
		return p.Persist()
	}
	return nil
}
