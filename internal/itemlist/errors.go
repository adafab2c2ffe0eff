package itemlist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for text that is empty after trimming.
	ErrInvalidInput = errors.New("invalid input: text is empty")
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrNoActiveEdit is returned by edit operations when no item is in edit mode.
	ErrNoActiveEdit = errors.New("no active edit")
)

type NotFoundError struct {
	Kind string
	ID   int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func errItemNotFound(id int) error {
	return NotFoundError{Kind: "item", ID: id}
}
