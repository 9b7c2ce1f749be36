package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a lookup is made without a key.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound maps an absent lookup onto an error at the service edge.
	ErrNotFound = errors.New("not found")
)

// FormatError reports an input that is not a usable zip archive.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%q is not a valid zip file", e.Path)
	}
	return fmt.Sprintf("%q is not a valid zip file: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
