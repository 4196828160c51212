package debounce

import (
	"time"

	"github.com/vango-dev/bind/pkg/bind"
)

// State couples a reactive value container with a debounced setter. Reads
// and watches observe the settled value; writes coalesce through the
// scheduler, so a burst of Set calls commits only the final value after the
// quiet period. Useful for search boxes, sliders, and anything else that
// produces high-frequency writes the rest of the graph should not see
// one by one.
type State[T any] struct {
	src *bind.Source[T]
	d   *Debounced[T, struct{}]
}

// NewState creates a debounced state slot holding initial. Writes settle
// into the container after the quiet-period wait. The options are the
// scheduler's; the caller must call Cancel on teardown.
func NewState[T any](initial T, wait time.Duration, opts ...Option) *State[T] {
	return NewStateFor(bind.NewSource(initial), wait, opts...)
}

// NewStateFor wraps an existing source, so a persistable or shared
// container can take debounced writes without changing its identity.
func NewStateFor[T any](src *bind.Source[T], wait time.Duration, opts ...Option) *State[T] {
	s := &State[T]{src: src}
	s.d = New(func(v T) struct{} {
		src.Set(v)
		return struct{}{}
	}, wait, opts...)
	return s
}

// Get returns the settled value. A pending write is not visible here until
// it commits.
func (s *State[T]) Get() T {
	return s.src.Get()
}

// Set records v as the pending write and (re)schedules the commit.
func (s *State[T]) Set(v T) {
	s.d.Call(v)
}

// Container exposes the settled value as a read-only reactive container,
// suitable as an input to Map or Compose.
func (s *State[T]) Container() bind.Container[T] {
	return s.src
}

// Source returns the underlying writable source. Direct writes bypass the
// scheduler and commit immediately.
func (s *State[T]) Source() *bind.Source[T] {
	return s.src
}

// Watch observes settled values. The callback fires on commits, not on
// every Set.
func (s *State[T]) Watch(fn func(T)) (stop func()) {
	return s.src.Watch(fn)
}

// Pending reports whether a write is waiting to commit.
func (s *State[T]) Pending() bool {
	return s.d.Pending()
}

// Peek returns the pending write and true, or the zero value and false
// when no write is waiting.
func (s *State[T]) Peek() (T, bool) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.d.pendingArg, s.d.argPending
}

// Flush commits any pending write immediately and returns the settled
// value.
func (s *State[T]) Flush() T {
	s.d.Flush()
	return s.src.Get()
}

// Cancel discards any pending write and stops the timer. Owners must call
// this on teardown.
func (s *State[T]) Cancel() {
	s.d.Cancel()
}
