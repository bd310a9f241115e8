// Package charclass turns hexadecimal code point literals into
// character-class bodies that can be embedded inside larger patterns.
//
// A Class is an ordered list of items, each either a single code point or a
// "start-end" range. Its String form has no enclosing brackets, so several
// classes can be concatenated inside one [...] group.
package charclass

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

const (
	minHexDigits = 4
	maxHexDigits = 6
)

// Class is a character-class body under construction.
type Class struct {
	items []string
}

// DecodeCodePoint parses a 4 to 6 digit hex literal into a Unicode scalar value.
// Surrogates and values above U+10FFFF are rejected.
func DecodeCodePoint(hex string) (rune, error) {
	if len(hex) < minHexDigits || len(hex) > maxHexDigits {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCodePoint, hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCodePoint, hex)
	}

	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCodePoint, hex)
	}

	return r, nil
}

// AppendRange adds a single code point when startHex equals endHex and a
// range otherwise. A range whose end precedes its start is rejected.
func (c *Class) AppendRange(startHex, endHex string) error {
	start, err := DecodeCodePoint(startHex)
	if err != nil {
		return err
	}

	end, err := DecodeCodePoint(endHex)
	if err != nil {
		return err
	}

	switch {
	case end < start:
		return fmt.Errorf("%w: %s-%s", errs.ErrInvalidRange, startHex, endHex)
	case end == start:
		c.items = append(c.items, escape(start))
	default:
		c.items = append(c.items, escape(start)+"-"+escape(end))
	}

	return nil
}

// Append adds a single code point.
func (c *Class) Append(hex string) error {
	return c.AppendRange(hex, hex)
}

// Len returns the number of items in the class.
func (c *Class) Len() int {
	return len(c.items)
}

func (c *Class) String() string {
	return strings.Join(c.items, "")
}

// escape quotes the runes that carry meaning inside a bracket expression.
func escape(r rune) string {
	switch r {
	case '\\', ']', '[', '^', '-':
		return `\` + string(r)
	default:
		return string(r)
	}
}
