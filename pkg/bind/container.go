package bind

import "sync"

// Container is a reactive value holder: readable synchronously, observable
// for change, and composable through Derive, Join, and Compose.
//
// The interface embeds an unexported capability, so only types from this
// package satisfy it. That makes the "is this a container?" test in Lift a
// deliberate capability check instead of structural matching: an unrelated
// type that happens to have Get and Watch methods is still treated as a
// plain value.
type Container[T any] interface {
	// Get returns the current value. For derived containers the value is
	// the cached result of the most recent computation; it is never stale
	// with respect to a settled update and never unset (the first
	// computation happens at construction).
	Get() T

	// Watch registers fn to run with the container's value after each
	// settled update. Watchers run only after every derived container
	// affected by the update has recomputed. The returned stop function
	// removes the watcher and is safe to call more than once.
	Watch(fn func(T)) (stop func())

	anyContainer
}

// anyContainer is the type-erased view every container implementation in
// this package provides. It is what Join and the propagation pass operate
// on, and it doubles as the unexported marker that closes Container to
// outside implementations.
type anyContainer interface {
	// getAny returns the current value untyped.
	getAny() any

	// attach subscribes an internal listener; detach removes it.
	attach(l Listener)
	detach(l Listener)

	// nodeDepth is the container's height in the dependency graph:
	// 0 for sources and constants, 1 + max(sources) for derived.
	nodeDepth() int

	// isConstant reports whether the container can never update.
	isConstant() bool
}

// base provides type-erased subscriber management. It is embedded in
// Source[T] and derived[T] to share subscription logic.
type base struct {
	id uint64

	// subs are the listeners subscribed to this container.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// subscribe adds a listener to this container's subscribers.
// Deduplicates by listener ID to prevent double-subscription.
func (b *base) subscribe(l Listener) {
	if l == nil {
		return
	}

	b.subMu.Lock()
	defer b.subMu.Unlock()

	lid := l.ID()
	for _, existing := range b.subs {
		if existing.ID() == lid {
			return
		}
	}

	b.subs = append(b.subs, l)
}

// unsubscribe removes a listener from this container's subscribers.
func (b *base) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	b.subMu.Lock()
	defer b.subMu.Unlock()

	lid := l.ID()
	for i, existing := range b.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			b.subs[i] = b.subs[len(b.subs)-1]
			b.subs = b.subs[:len(b.subs)-1]
			return
		}
	}
}

// notify hands all current subscribers to the propagation pass for the
// running goroutine. Uses copy-before-notify to avoid holding locks while
// listeners run. Outside a batch the pass drains immediately; inside one it
// drains when the outermost batch completes.
func (b *base) notify() {
	b.subMu.RLock()
	subs := make([]Listener, len(b.subs))
	copy(subs, b.subs)
	b.subMu.RUnlock()

	p := currentPropagation()
	for _, sub := range subs {
		p.enqueue(sub)
	}
	p.flushIfIdle()
}

// getID returns the unique identifier for this container.
func (b *base) getID() uint64 {
	return b.id
}

// IsConstant reports whether x is a container that can never update.
// Non-container values report false.
func IsConstant(x any) bool {
	c, ok := x.(anyContainer)
	return ok && c.isConstant()
}

// constant is a Container that never updates.
type constant[T any] struct {
	value T
}

// Const returns a container permanently holding v. It allocates no
// notification machinery: Watch returns a no-op stop function and no
// subscription is ever created on it.
func Const[T any](v T) Container[T] {
	return constant[T]{value: v}
}

func (c constant[T]) Get() T { return c.value }

func (c constant[T]) Watch(func(T)) (stop func()) { return func() {} }

func (c constant[T]) getAny() any { return c.value }

func (c constant[T]) attach(Listener) {}

func (c constant[T]) detach(Listener) {}

func (c constant[T]) nodeDepth() int { return 0 }

func (c constant[T]) isConstant() bool { return true }

// anyConst wraps a plain value handed to Join so it can travel through the
// type-erased path. It is not a Container of any type; it only feeds tuple
// reads.
type anyConst struct {
	value any
}

func (c anyConst) getAny() any { return c.value }

func (c anyConst) attach(Listener) {}

func (c anyConst) detach(Listener) {}

func (c anyConst) nodeDepth() int { return 0 }

func (c anyConst) isConstant() bool { return true }
