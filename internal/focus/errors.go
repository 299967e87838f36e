package focus

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrDuplicateID indicates an id that is already registered.
	ErrDuplicateID = errors.New("duplicate focus id")

	// ErrDuplicateOrder indicates an order index already in use.
	ErrDuplicateOrder = errors.New("duplicate focus order")

	// ErrNotFound indicates an id that is not registered.
	ErrNotFound = errors.New("focus id not found")

	// ErrDisabled indicates an attempt to focus a disabled entry.
	ErrDisabled = errors.New("focus target disabled")
)

// RegistrationError describes a rejected Register call.
type RegistrationError struct {
	ID    ID
	Order int
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register focus %q at order %d: %v", e.ID, e.Order, e.Err)
}

// Unwrap returns ErrDuplicateID or ErrDuplicateOrder.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}
