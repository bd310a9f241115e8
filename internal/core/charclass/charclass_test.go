package charclass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

func TestDecodeCodePoint(t *testing.T) {
	tests := []struct {
		hex     string
		want    rune
		wantErr bool
	}{
		{"0020", ' ', false},
		{"04ff", 0x04FF, false},
		{"3000", '\u3000', false},
		{"10000", 0x10000, false},
		{"10FFFF", 0x10FFFF, false},
		{"D800", 0, true},    // surrogate
		{"110000", 0, true},  // out of range
		{"12", 0, true},      // too short
		{"1234567", 0, true}, // too long
		{"zzzz", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := DecodeCodePoint(tt.hex)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidCodePoint)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClass_AppendRange(t *testing.T) {
	c := &Class{}

	require.NoError(t, c.AppendRange("0041", "005A"))
	require.NoError(t, c.Append("00e9"))
	require.NoError(t, c.AppendRange("0030", "0030"))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "A-Z\u00e90", c.String())
}

func TestClass_AppendRangeReversed(t *testing.T) {
	c := &Class{}

	err := c.AppendRange("005A", "0041")
	require.ErrorIs(t, err, errs.ErrInvalidRange)
	assert.Equal(t, 0, c.Len())
}

func TestClass_EscapesMetaCharacters(t *testing.T) {
	c := &Class{}

	require.NoError(t, c.Append("002D"))
	require.NoError(t, c.AppendRange("005B", "005D"))

	assert.Equal(t, `\-\[-\]`, c.String())
}

func TestTablesBuild(t *testing.T) {
	builders := map[string]func() (*Class, error){
		"non-latin":     NonLatinHashtagChars,
		"latin accents": LatinAccentChars,
		"spaces":        UnicodeSpaces,
		"invalid":       InvalidChars,
		"non-bmp":       NonBMPChars,
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			c, err := build()
			require.NoError(t, err)
			assert.Positive(t, c.Len())
		})
	}
}

func TestUnicodeSpaces_ContainsIdeographicSpace(t *testing.T) {
	c, err := UnicodeSpaces()
	require.NoError(t, err)

	assert.True(t, strings.ContainsRune(c.String(), '\u3000'))
	assert.True(t, strings.Contains(c.String(), "\t-\r"))
}

func TestLatinAccentChars_SkipsMultiplicationSign(t *testing.T) {
	c, err := LatinAccentChars()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.String(), "\u00c0-\u00d6\u00d8-\u00f6"))
	assert.False(t, strings.ContainsRune(c.String(), '\u00d7'))
}

func TestRTLBlocks(t *testing.T) {
	classes, err := RTLBlocks()
	require.NoError(t, err)
	require.Len(t, classes, 4)
	assert.Equal(t, "\u0600-\u06ff", classes[0].String())
}
