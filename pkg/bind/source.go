package bind

import (
	"fmt"
	"reflect"
	"sync"
)

// Source is a writable reactive value container. It is the only container
// kind external code can assign into; derived containers update exclusively
// through their recomputation path.
type Source[T any] struct {
	base base

	// value is the current value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to decide whether a write
	// changed the value. If nil, uses default equality checking.
	equal func(T, T) bool

	// opts holds persistence metadata.
	opts sourceOptions
}

// NewSource creates a writable container with the given initial value.
func NewSource[T any](initial T, opts ...SourceOption) *Source[T] {
	return &Source[T]{
		base: base{
			id: nextID(),
		},
		value: initial,
		opts:  applySourceOptions(opts),
	}
}

// Get returns the current value.
func (s *Source[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and propagates to dependents and watchers if the
// value changed per the source's equality function. Writing an equal value
// is a no-op.
func (s *Source[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// Update atomically reads and updates the value. The function receives the
// current value and returns the new one.
func (s *Source[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// Watch registers fn to run with the new value after each settled update.
func (s *Source[T]) Watch(fn func(T)) (stop func()) {
	w := &watcher[T]{id: nextID(), src: s, fn: fn}
	s.base.subscribe(w)
	return func() { s.base.unsubscribe(w) }
}

// WatchAny registers a change callback that receives no value. It exists
// for type-erased consumers (persistence, inspection) that only need the
// change signal.
func (s *Source[T]) WatchAny(fn func()) (stop func()) {
	w := &anyWatcher{id: nextID(), fn: fn}
	s.base.subscribe(w)
	return func() { s.base.unsubscribe(w) }
}

// WithEquals configures a custom equality function and returns the source.
// Useful for types where reflect.DeepEqual is too expensive or has the
// wrong semantics.
func (s *Source[T]) WithEquals(fn func(T, T) bool) *Source[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this source.
func (s *Source[T]) ID() uint64 {
	return s.base.id
}

// IsTransient reports whether the source opted out of persistence.
func (s *Source[T]) IsTransient() bool {
	return s.opts.transient
}

// PersistKey returns the source's persistence key, or empty when none was
// configured.
func (s *Source[T]) PersistKey() string {
	return s.opts.persistKey
}

// GetAny returns the current value untyped.
func (s *Source[T]) GetAny() any {
	return s.Get()
}

// SetAny sets the value from an untyped snapshot. It returns a
// *TypeMismatchError when the dynamic type does not match T.
func (s *Source[T]) SetAny(value any) error {
	v, ok := value.(T)
	if !ok {
		var zero T
		return &TypeMismatchError{
			Key:      s.opts.persistKey,
			Expected: fmt.Sprintf("%T", zero),
			Actual:   fmt.Sprintf("%T", value),
		}
	}
	s.Set(v)
	return nil
}

func (s *Source[T]) getAny() any { return s.Get() }

func (s *Source[T]) attach(l Listener) { s.base.subscribe(l) }

func (s *Source[T]) detach(l Listener) { s.base.unsubscribe(l) }

func (s *Source[T]) nodeDepth() int { return 0 }

func (s *Source[T]) isConstant() bool { return false }

// equals checks two values with the configured equality function.
func (s *Source[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Fall back to reflect.DeepEqual for slices, maps, structs, etc.
		return reflect.DeepEqual(a, b)
	}
}

// watcher delivers typed values to a Watch callback. It is not a node, so
// the propagation pass runs it only after all derived recomputation for the
// instant has settled.
type watcher[T any] struct {
	id  uint64
	src Container[T]
	fn  func(T)
}

func (w *watcher[T]) MarkDirty() { w.fn(w.src.Get()) }

func (w *watcher[T]) ID() uint64 { return w.id }

// anyWatcher is the value-free variant used by WatchAny.
type anyWatcher struct {
	id uint64
	fn func()
}

func (w *anyWatcher) MarkDirty() { w.fn() }

func (w *anyWatcher) ID() uint64 { return w.id }
