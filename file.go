package treefs

import "sync"

// File is a named, immutable entry of a tree. Files compare by reference:
// two files are the same only when they are the same value.
type File interface {
	Name() Name
	Content() Content
	MediaType() MediaType
}

type leaf struct {
	name      Name
	content   Content
	mediaType func() MediaType
	src       Source
}

// FileOption configures a file built by NewFile.
type FileOption func(*leaf)

// WithMediaType sets the media type instead of sniffing it from content.
func WithMediaType(mt MediaType) FileOption {
	return func(f *leaf) { f.mediaType = func() MediaType { return mt } }
}

func withMediaTypeFunc(fn func() MediaType) FileOption {
	return func(f *leaf) { f.mediaType = sync.OnceValue(fn) }
}

// NewFile returns a leaf file. Without WithMediaType the media type is
// sniffed from content on first use.
func NewFile(name Name, content Content, opts ...FileOption) File {
	f := &leaf{name: name, content: content}
	for _, opt := range opts {
		opt(f)
	}
	if f.mediaType == nil {
		f.mediaType = sync.OnceValue(func() MediaType { return DetectMediaType(content) })
	}
	return f
}

func (f *leaf) Name() Name           { return f.name }
func (f *leaf) Content() Content     { return f.content }
func (f *leaf) MediaType() MediaType { return f.mediaType() }

// Rename returns f under a new name. The result carries no source.
func Rename(f File, name Name) File {
	switch f := f.(type) {
	case *Directory:
		return f.rename(name)
	case *leaf:
		c := *f
		c.name = name
		c.src = Source{}
		return &c
	default:
		return &leaf{name: name, content: f.Content(), mediaType: f.MediaType}
	}
}

// withContent rebuilds f as a leaf holding c, keeping its name and source.
func withContent(f File, c Content, mediaType func() MediaType) File {
	src, _ := SourceOf(f)
	return &leaf{name: f.Name(), content: c, mediaType: sync.OnceValue(mediaType), src: src}
}
