package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	ErrIDSpaceExhausted = errors.New("item id space exhausted")
)

type NotFoundError struct {
	Kind string // "epic" or "story"
	ID   uint32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func errEpicNotFound(id uint32) error  { return &NotFoundError{Kind: "epic", ID: id} }
func errStoryNotFound(id uint32) error { return &NotFoundError{Kind: "story", ID: id} }

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ReadError means the persisted resource exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// ParseError means the persisted resource was read but is not a valid DBState.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// WriteError means a computed state could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
