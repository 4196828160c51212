package bind

import "sync"

// Stream is an interface for event streams that support subscription.
// The Subscribe method returns an unsubscribe function.
type Stream[T any] interface {
	Subscribe(handler func(T)) (unsubscribe func())
}

// Emitter is an in-process Stream with fan-out delivery. Emit invokes every
// subscriber's handler synchronously, in subscription order, using
// copy-before-notify so handlers may subscribe or unsubscribe freely.
type Emitter[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(T)
	order  []uint64
	closed bool
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{subs: make(map[uint64]func(T))}
}

// Subscribe registers handler for future events. The returned unsubscribe
// function is idempotent. Subscribing to a closed emitter returns a no-op
// unsubscribe and the handler is never invoked.
func (e *Emitter[T]) Subscribe(handler func(T)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return func() {}
	}

	e.nextID++
	id := e.nextID
	e.subs[id] = handler
	e.order = append(e.order, id)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Emit delivers v to every current subscriber. Events emitted after Close
// are dropped.
func (e *Emitter[T]) Emit(v T) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return
	}
	handlers := make([]func(T), 0, len(e.subs))
	for _, id := range e.order {
		if h, ok := e.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		h(v)
	}
}

// Close drops all subscribers and makes further Emit calls no-ops.
// Idempotent.
func (e *Emitter[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.subs = nil
	e.order = nil
}

// SubscriberCount returns the number of live subscriptions.
func (e *Emitter[T]) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

// Feed pumps a stream into a source: every event becomes a Set. The
// returned stop function unsubscribes from the stream.
func Feed[T any](s Stream[T], src *Source[T]) (stop func()) {
	return s.Subscribe(src.Set)
}

// Latest materializes a stream as a container holding the most recent
// event, starting from initial. Stop unsubscribes; the container keeps its
// last value afterwards.
func Latest[T any](s Stream[T], initial T) (Container[T], Cleanup) {
	src := NewSource(initial)
	stop := Feed(s, src)
	return src, stop
}
