package notes

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = errors.New("note not found")
)

// ValidationError reports a required field that was empty after trimming.
type ValidationError struct {
	Field string // "title" or "content"
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UserMessage returns the rejection text shown to the user.
func (e *ValidationError) UserMessage() string {
	if e.Field == "content" {
		return "Please enter content"
	}
	return "Please enter a " + e.Field
}

// NotFoundError reports an operation on an id that is not in the collection.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %d not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
