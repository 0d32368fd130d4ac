package treefs

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"a", "a.txt", ".bashrc", "with space", "ünïcödé", "...", strings.Repeat("x", MaxNameLength)} {
		n, err := NewName(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, n.String())
		assert.False(t, n.IsZero())
	}
}

func TestNewName_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":      "",
		"dot":        ".",
		"dotdot":     "..",
		"slash":      "a/b",
		"backslash":  `a\b`,
		"quote":      `a"b`,
		"apostrophe": "it's",
		"nul":        "a\x00b",
		"newline":    "a\nb",
		"delete":     "a\x7fb",
		"blank":      "   ",
		"too long":   strings.Repeat("x", MaxNameLength+1),
		"bad utf-8":  "\xff",
	}
	for label, s := range tests {
		_, err := NewName(s)
		require.Error(t, err, label)
		assert.ErrorIs(t, err, ErrInvalidName, label)

		var nameErr *NameError
		require.True(t, errors.As(err, &nameErr), label)
		assert.Equal(t, s, nameErr.Value)
	}
}

func TestMustName_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustName("a/b") })
	assert.NotPanics(t, func() { MustName("ab") })
}

func TestName_EqualityAndExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MustName("a.txt"), MustName("a.txt"))
	assert.NotEqual(t, MustName("a.txt"), MustName("A.TXT"))
	assert.True(t, MustName("a.txt").EqualFold(MustName("A.TXT")))

	assert.Equal(t, ".txt", MustName("a.txt").Ext())
	assert.Equal(t, ".gz", MustName("a.tar.gz").Ext())
	assert.Equal(t, "", MustName("foo").Ext())
	assert.True(t, Name{}.IsZero())
}
