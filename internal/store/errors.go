package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("record not found")

// NotFoundError is returned when no record exists for an id.
type NotFoundError struct {
	Kind string // "resume" or "analysis"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s_id: %s", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CorruptRecordError is returned when a stored record cannot be decoded.
type CorruptRecordError struct {
	Path  string
	Cause error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %s: %v", e.Path, e.Cause)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Cause
}
