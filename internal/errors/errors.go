package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the repository-level signal for a missing task id.
	ErrNotFound = errors.New("not found")

	// ErrTaskNotFound is the service-level translation of ErrNotFound.
	ErrTaskNotFound = errors.New("task not found")

	// ErrValidation marks caller-supplied data that violates a domain rule.
	ErrValidation = errors.New("validation failed")
)

// StorageError wraps any failure reading, decoding, or writing the backing
// file. Raw filesystem and JSON errors never cross the repository boundary;
// they travel as the cause of a StorageError instead.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
