package util

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
)

// startFile launches the default application for a path; swapped in tests
var startFile = open.Start

// OpenFile opens path with the platform's default application without waiting for it to exit
func OpenFile(path string) error {
	if err := startFile(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
