package treefs

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

// MediaType is a parsed media type in canonical form. The zero value
// reads as OctetStream.
type MediaType struct {
	value string
}

var (
	OctetStream   = MediaType{value: "application/octet-stream"}
	DirectoryType = MediaType{value: "text/directory"}
)

// ParseMediaType parses s and normalizes it, keeping parameters.
func ParseMediaType(s string) (MediaType, error) {
	base, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, err
	}
	return MediaType{value: mime.FormatMediaType(base, params)}, nil
}

func (m MediaType) String() string {
	if m.value == "" {
		return OctetStream.value
	}
	return m.value
}

// Base returns the type without parameters.
func (m MediaType) Base() string {
	base, _, err := mime.ParseMediaType(m.String())
	if err != nil {
		return m.String()
	}
	return base
}

// DetectMediaType sniffs the leading bytes of c. Detection failures fall
// back to OctetStream.
func DetectMediaType(c Content) MediaType {
	r := NewReader(c)
	defer r.Close()

	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return OctetStream
	}
	mt, err := ParseMediaType(detected.String())
	if err != nil {
		return OctetStream
	}
	return mt
}
