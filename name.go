package treefs

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest name, in bytes, a file or directory may have.
const MaxNameLength = 255

// Name is a validated file or directory name. The zero value is not a
// valid name; use NewName or MustName.
type Name struct {
	value string
}

// NewName validates s and returns it as a Name.
func NewName(s string) (Name, error) {
	if reason := checkName(s); reason != "" {
		return Name{}, &NameError{Value: s, Reason: reason}
	}
	return Name{value: s}, nil
}

// MustName is like NewName but panics on an invalid name.
func MustName(s string) Name {
	n, err := NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func checkName(s string) string {
	switch {
	case s == "":
		return "empty"
	case len(s) > MaxNameLength:
		return "too long"
	case s == "." || s == "..":
		return "reserved"
	case !utf8.ValidString(s):
		return "not valid utf-8"
	case strings.TrimSpace(s) == "":
		return "blank"
	}
	for _, r := range s {
		switch {
		case r == '/' || r == '\\':
			return "contains a path separator"
		case r == '"' || r == '\'':
			return "contains a quote"
		case r < 0x20 || r == 0x7f:
			return "contains a control character"
		}
	}
	return ""
}

func (n Name) String() string { return n.value }

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.value == "" }

// EqualFold reports whether n and o are equal under Unicode case folding.
func (n Name) EqualFold(o Name) bool { return strings.EqualFold(n.value, o.value) }

// Ext returns the extension of n including the leading dot, or "".
func (n Name) Ext() string { return filepath.Ext(n.value) }
