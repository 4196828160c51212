package bind

import "sync"

// derived is a container whose value is a pure function of one or more
// source containers. The value is computed eagerly: once at construction
// and once per settled update of any reactive source. Only the
// recomputation path assigns into the cache; external code cannot.
type derived[T any] struct {
	base base

	// sources are the reactive inputs this container is attached to.
	sources []anyContainer

	// compute produces the value from the sources' current values.
	// It must be pure; a panic unwinds to whoever triggered the update
	// and leaves the cached value untouched.
	compute func() T

	// value is the cached result of the last completed computation.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// graphDepth is 1 + the maximum depth of the reactive sources. The
	// propagation pass recomputes in ascending depth order, so this
	// container always reads fully settled inputs.
	graphDepth int
}

// newDerived builds a derived container over the reactive subset of
// sources. The initial value is computed before the container is attached
// anywhere, so it is never observable unset. When no source is reactive the
// computed value can never change and a constant container is returned
// instead; the compute function runs exactly once either way.
func newDerived[T any](sources []anyContainer, compute func() T) Container[T] {
	initial := compute()

	reactive := make([]anyContainer, 0, len(sources))
	depth := 0
	for _, src := range sources {
		if src.isConstant() {
			continue
		}
		reactive = append(reactive, src)
		if d := src.nodeDepth(); d >= depth {
			depth = d + 1
		}
	}

	if len(reactive) == 0 {
		return Const(initial)
	}

	d := &derived[T]{
		base:       base{id: nextID()},
		sources:    reactive,
		compute:    compute,
		value:      initial,
		graphDepth: depth,
	}

	for _, src := range reactive {
		src.attach(d)
	}

	return d
}

// Get returns the cached value of the last completed computation.
func (d *derived[T]) Get() T {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.value
}

// Watch registers fn to run with the new value after each settled update.
func (d *derived[T]) Watch(fn func(T)) (stop func()) {
	w := &watcher[T]{id: nextID(), src: d, fn: fn}
	d.base.subscribe(w)
	return func() { d.base.unsubscribe(w) }
}

// MarkDirty recomputes the value and propagates to this container's own
// subscribers. Called by the propagation pass after all shallower nodes
// have settled. The cache is assigned only after compute returns, so a
// panicking compute leaves the previous value published.
func (d *derived[T]) MarkDirty() {
	value := d.compute()

	d.mu.Lock()
	d.value = value
	d.mu.Unlock()

	d.base.notify()
}

// ID returns the unique identifier for this container.
func (d *derived[T]) ID() uint64 { return d.base.id }

func (d *derived[T]) depth() int { return d.graphDepth }

func (d *derived[T]) getAny() any { return d.Get() }

func (d *derived[T]) attach(l Listener) { d.base.subscribe(l) }

func (d *derived[T]) detach(l Listener) { d.base.unsubscribe(l) }

func (d *derived[T]) nodeDepth() int { return d.graphDepth }

func (d *derived[T]) isConstant() bool { return false }

// Derive returns a container that recomputes f(src.Get()) every time src
// updates. The initial value is f applied to the source's current value,
// computed before Derive returns. A constant source yields a constant
// result with no subscription.
func Derive[T, U any](src Container[T], f func(T) U) Container[U] {
	return newDerived([]anyContainer{src}, func() U {
		return f(src.Get())
	})
}

// Map is Derive over a possibly-reactive input: source may be a plain T or
// a Container[T]. Plain values are transformed once into a constant.
//
//	celsius := bind.NewSource(21.5)
//	fahrenheit := bind.Map(celsius, func(c float64) float64 { return c*9/5 + 32 })
//	label := bind.Map("united", strings.ToUpper) // constant "UNITED"
func Map[T, U any](source any, f func(T) U) Container[U] {
	return Derive(Lift[T](source), f)
}
