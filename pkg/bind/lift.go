package bind

import "fmt"

// Lift normalizes a possibly-reactive input into a Container[T] so
// downstream code has one shape to operate on:
//
//   - a Container[T] is returned unchanged, no wrapping, no copy;
//   - a plain T is wrapped into a new constant container.
//
// Anything else is programmer error and panics with an error wrapping
// ErrNotLiftable. The container test is the Container capability itself,
// not structural matching, so unrelated types with look-alike methods lift
// as plain values only when they actually are a T.
func Lift[T any](x any) Container[T] {
	if c, ok := x.(Container[T]); ok {
		return c
	}
	if v, ok := x.(T); ok {
		return Const(v)
	}

	var zero T
	panic(fmt.Errorf("%w: %T is neither %T nor a container of it", ErrNotLiftable, x, zero))
}

// liftAny is the type-erased lift used by Join: containers of any value
// type pass through, everything else becomes a tuple-only constant.
func liftAny(x any) anyContainer {
	if c, ok := x.(anyContainer); ok {
		return c
	}
	return anyConst{value: x}
}
