// Package errors provides centralized error definitions for the module.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Unicode table errors.
var (
	// ErrInvalidCodePoint indicates a hex literal that is not a Unicode scalar value.
	ErrInvalidCodePoint = errors.New("invalid code point")

	// ErrInvalidRange indicates a code point range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid code point range")
)

// Pattern registry errors.
var (
	// ErrDuplicateFragment indicates a fragment name was defined twice.
	ErrDuplicateFragment = errors.New("fragment already defined")

	// ErrUnknownFragment indicates a lookup of a fragment that was never defined.
	ErrUnknownFragment = errors.New("unknown fragment")

	// ErrFragmentCycle indicates fragments that reference each other in a loop.
	ErrFragmentCycle = errors.New("fragment reference cycle")

	// ErrPatternCompile indicates a resolved pattern the matcher rejected.
	ErrPatternCompile = errors.New("pattern does not compile")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTextTooLong indicates the submitted text exceeds the configured limit.
	ErrTextTooLong = errors.New("text too long")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
