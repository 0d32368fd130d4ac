package treefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	t.Parallel()

	mt, err := ParseMediaType("Text/Plain; Charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", mt.String())
	assert.Equal(t, "text/plain", mt.Base())

	_, err = ParseMediaType("not a media type")
	assert.Error(t, err)
}

func TestMediaType_ZeroIsOctetStream(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/octet-stream", MediaType{}.String())
	assert.Equal(t, "text/directory", DirectoryType.String())
}

func TestDetectMediaType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/plain", DetectMediaType(Text("hello world")).Base())
	assert.Equal(t, "image/png", DetectMediaType(Bytes([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))).Base())
	assert.Equal(t, "application/json", DetectMediaType(Text(`{"a": 1}`)).Base())
}

func TestNewFile_MediaType(t *testing.T) {
	t.Parallel()

	sniffed := NewFile(MustName("a.txt"), Text("plain text"))
	assert.Equal(t, "text/plain", sniffed.MediaType().Base())

	html, err := ParseMediaType("text/html")
	require.NoError(t, err)
	fixed := NewFile(MustName("a.txt"), Text("plain text"), WithMediaType(html))
	assert.Equal(t, html, fixed.MediaType())
}
