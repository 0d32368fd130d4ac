package treefs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName           = errors.New("treefs: invalid name")
	ErrDuplicatedEntry       = errors.New("treefs: duplicated entry")
	ErrNotADirectory         = errors.New("treefs: not a directory")
	ErrMissingPath           = errors.New("treefs: missing path segment")
	ErrDirectoryNotSupported = errors.New("treefs: directories not supported")
	ErrStreamClosed          = errors.New("treefs: stream closed")
)

// NameError reports a string that cannot be used as a Name.
type NameError struct {
	Value  string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("treefs: invalid name %q: %s", e.Value, e.Reason)
}

func (e *NameError) Is(target error) bool { return target == ErrInvalidName }

// DuplicateError reports two entries of one directory sharing a name.
type DuplicateError struct {
	Directory Name
	Name      Name
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("treefs: duplicated entry %q in %q", e.Name, e.Directory)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicatedEntry }
