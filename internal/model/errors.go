package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks missing or rejected search credentials and other operator configuration problems.
	ErrConfig = errors.New("configuration error")

	// ErrNoInput is returned when no input document was selected
	ErrNoInput = errors.New("no input file selected")

	// ErrResolution marks a per-term failure. The resolver records the term as not found and moves on.
	ErrResolution = errors.New("resolution failure")
)

// WrapError preserves a typed error kind with operation context
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", operation, kind)
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
