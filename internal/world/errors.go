package world

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id is absent from the store.
	ErrNotFound = errors.New("entity not found")

	// ErrLocationNotFound is the ErrNotFound specialization raised when a
	// location reference target does not exist. It satisfies
	// errors.Is(err, ErrNotFound).
	ErrLocationNotFound = fmt.Errorf("location %w", ErrNotFound)
)
