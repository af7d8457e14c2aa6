package loader

import (
	"errors"
	"fmt"
)

var ErrTooFewColumns = errors.New("too few columns")

// LoadError reports a workbook that could not be turned into a table.
// It is fatal to the run.
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
