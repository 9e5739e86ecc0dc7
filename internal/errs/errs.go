// Package errs holds the I/O failure kind shared by the resolver and the store.
package errs

import (
	"errors"
	"fmt"
)

// IOError reports a filesystem failure: missing home directory, or a pointer or
// data file that could not be opened, read, seeked, truncated or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Wrap returns nil when err is nil.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// IsIO reports whether err carries an IOError anywhere in its chain.
func IsIO(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
