package service

import (
	"errors"
	"fmt"
)

var ErrEmptyDescription = errors.New("task description must not be empty")

// NoMatchError means no eligible task matched the query at all.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no matching task found for: %q", e.Query)
}

// LowMatchError means the best candidate scored below the required confidence.
type LowMatchError struct {
	Query       string
	Description string
	Confidence  int
}

func (e *LowMatchError) Error() string {
	return fmt.Sprintf("best match too low (%d%%): %q", e.Confidence, e.Description)
}
