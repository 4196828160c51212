package bind

import (
	"errors"
	"fmt"
)

// ErrNotLiftable is the base error for Lift calls whose argument is neither
// a container of the requested type nor a plain value assignable to it.
// Lift panics with an error wrapping this sentinel, so recover sites can
// test for it with errors.Is.
var ErrNotLiftable = errors.New("bind: value cannot be lifted to the requested container type")

// TypeMismatchError is returned by SetAny when the supplied value's dynamic
// type does not match the source's value type.
type TypeMismatchError struct {
	// Key is the source's persistence key, or empty when it has none.
	Key string

	// Expected and Actual are the Go type names involved.
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("bind: type mismatch for %q: expected %s, got %s", e.Key, e.Expected, e.Actual)
	}
	return fmt.Sprintf("bind: type mismatch: expected %s, got %s", e.Expected, e.Actual)
}
