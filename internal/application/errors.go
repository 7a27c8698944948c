package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrEmptyQuery       = errors.New("empty query")
)

// LoadError represents a failure to read or parse the document collection.
// A single failing file aborts the whole load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load documents: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LookupError represents a document or section reference that matched nothing
type LookupError struct {
	Ref  string
	Kind string // "document" or "section"
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Ref)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
