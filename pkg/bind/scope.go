package bind

import (
	"sync"
	"sync/atomic"
)

// Scope owns cleanup actions and child scopes, guaranteeing teardown in a
// single Dispose call. Watches, debounced schedulers, emitters, and
// inspectors register their stop functions with a scope so the owner never
// leaks a subscription or a live timer.
type Scope struct {
	id     uint64
	parent *Scope

	// children are disposed before this scope's own cleanups, in reverse
	// creation order.
	children   []*Scope
	childrenMu sync.Mutex

	// cleanups run LIFO on Dispose.
	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool
}

// NewScope creates a scope under parent. A nil parent creates a root scope.
// The child is disposed automatically when the parent is.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(s)
	}

	return s
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Disposed returns true once Dispose has run.
func (s *Scope) Disposed() bool {
	return s.disposed.Load()
}

// OnCleanup registers fn to run when the scope is disposed. Registering on
// an already disposed scope runs fn immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed.Load() {
		fn()
		return
	}

	s.cleanupsMu.Lock()
	defer s.cleanupsMu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// Dispose tears the scope down: children in reverse creation order first,
// then this scope's cleanups LIFO. Idempotent.
func (s *Scope) Dispose() {
	if s.disposed.Swap(true) {
		return
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.childrenMu.Lock()
	children := make([]*Scope, len(s.children))
	copy(children, s.children)
	s.children = nil
	s.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	s.cleanupsMu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// addChild registers a child scope.
func (s *Scope) addChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	s.children = append(s.children, child)
}

// removeChild removes a child scope from this scope's children.
func (s *Scope) removeChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// WatchScoped watches c for the lifetime of the scope: the watch stops when
// the scope is disposed. Returns the stop function for early removal.
func WatchScoped[T any](s *Scope, c Container[T], fn func(T)) (stop func()) {
	stop = c.Watch(fn)
	s.OnCleanup(stop)
	return stop
}

// SkipFirst returns a function that ignores its first invocation and runs
// fn on every subsequent one. Use it to suppress the initial notification
// of a reaction that should only respond to later updates.
func SkipFirst(fn func()) func() {
	var ran atomic.Bool
	return func() {
		if ran.CompareAndSwap(false, true) {
			return
		}
		fn()
	}
}

// SkipFirstOf is SkipFirst for callbacks taking a value, shaped to slot
// straight into Watch.
func SkipFirstOf[T any](fn func(T)) func(T) {
	var ran atomic.Bool
	return func(v T) {
		if ran.CompareAndSwap(false, true) {
			return
		}
		fn(v)
	}
}
