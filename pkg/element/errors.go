package element

import "errors"

var (
	// ErrElementNotFound indicates an element ID that was never registered.
	ErrElementNotFound = errors.New("element not found")

	// ErrAlreadyRegistered indicates a duplicate element ID.
	ErrAlreadyRegistered = errors.New("element already registered")

	// ErrInvalidDefinition indicates a malformed element definition.
	ErrInvalidDefinition = errors.New("invalid element definition")
)
