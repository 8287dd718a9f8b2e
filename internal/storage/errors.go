package storage

import (
	"errors"
	"fmt"
)

// ErrUnwritableHeader reports a project name or version the TODO.md header
// cannot hold.
var ErrUnwritableHeader = errors.New("value cannot be stored in the TODO.md header")

// NotFoundError reports a task index outside the list.
type NotFoundError struct {
	Index int
	Len   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task index %d out of bounds (list has %d tasks)", e.Index, e.Len)
}

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError reports an unknown dotted configuration key.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("unknown config key %q", e.Key)
}
