package treefs

// Event is an entry of a directory's modification log: Added or Removed.
type Event interface {
	Target() Name
	isEvent()
}

// Added records that a file was inserted or replaced.
type Added struct {
	File File
}

// Removed records that an entry was deleted.
type Removed struct {
	Name Name
}

func (e Added) Target() Name   { return e.File.Name() }
func (e Removed) Target() Name { return e.Name }

func (Added) isEvent()   {}
func (Removed) isEvent() {}
