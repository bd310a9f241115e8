package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("building hebrew: %w", ErrInvalidRange)

	if !Is(wrapped, ErrInvalidRange) {
		t.Error("expected wrapped error to match ErrInvalidRange")
	}

	if Is(wrapped, ErrInvalidCodePoint) {
		t.Error("wrapped error should not match ErrInvalidCodePoint")
	}
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("decoding request: %w", &http.MaxBytesError{Limit: 16})

	var tooLarge *http.MaxBytesError
	if !As(wrapped, &tooLarge) {
		t.Fatal("expected As to find *http.MaxBytesError")
	}

	if tooLarge.Limit != 16 {
		t.Errorf("Limit = %d, want %d", tooLarge.Limit, 16)
	}
}
