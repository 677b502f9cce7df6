package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrSetNotFound indicates that no flashcard set has the requested name.
	ErrSetNotFound = fmt.Errorf("%w: flashcard set", ErrNotFound)

	// ErrNoSetSelected is returned by operations that need a current set
	// when none has been created or chosen yet.
	ErrNoSetSelected = errors.New("no flashcard set selected")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
