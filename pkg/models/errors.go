package models

import (
	"errors"
	"fmt"
)

// Run-terminating conditions. Everything else is collected per entry and
// surfaced as diagnostics.
var (
	// ErrPathNotFound - the scan root does not exist
	ErrPathNotFound = errors.New("scan root not found")
	// ErrPathNotReadable - the scan root exists but cannot be read
	ErrPathNotReadable = errors.New("scan root not readable")
	// ErrEmptyIndex - traversal finished but found no regular files
	ErrEmptyIndex = errors.New("no files found under scan root")
)

// TraversalError records a single entry the walker could not read. The
// entry is excluded from the index and the walk continues.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversal: %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// HashError records a file that could not be hashed, typically because it
// was deleted or became unreadable between indexing and hashing. The file
// is dropped from duplicate consideration only.
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash: %s: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}
