package bind

import (
	"runtime"
	"sync"
)

// propagation holds the update state for one goroutine: the batch nesting
// depth and the queue of listeners waiting to run for the current update
// instant. Each goroutine has its own propagation so concurrent writers on
// unrelated graphs never contend.
type propagation struct {
	// batchDepth tracks nested Batch() calls. When > 0, enqueued listeners
	// wait until the outermost batch completes.
	batchDepth int

	// queue holds pending listeners in arrival order. Derived containers in
	// the queue are run in ascending depth order; watchers run only once no
	// derived container remains.
	queue []Listener

	// queued deduplicates queue entries by listener ID.
	queued map[uint64]bool

	// flushing guards against re-entrant drains when a listener itself
	// updates a source.
	flushing bool
}

// propagations stores per-goroutine propagation state.
// Using sync.Map for concurrent access from multiple goroutines.
var propagations sync.Map

// goroutineID returns a unique identifier for the current goroutine by
// parsing the runtime stack header. This is an implementation detail and
// must not be relied upon externally.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// currentPropagation returns the propagation state for the current
// goroutine, creating it on first use. The state is small and reusable, so
// it is left in place when the goroutine exits.
func currentPropagation() *propagation {
	gid := goroutineID()

	if p, ok := propagations.Load(gid); ok {
		return p.(*propagation)
	}

	p := &propagation{queued: make(map[uint64]bool)}
	propagations.Store(gid, p)
	return p
}

// enqueue adds a listener to the pending queue, deduplicating by ID so a
// listener reachable through several updated sources runs exactly once per
// update instant.
func (p *propagation) enqueue(l Listener) {
	if l == nil {
		return
	}

	id := l.ID()
	if p.queued[id] {
		return
	}
	p.queued[id] = true
	p.queue = append(p.queue, l)
}

// flushIfIdle drains the queue unless a batch is open or a drain is already
// running higher up the stack.
func (p *propagation) flushIfIdle() {
	if p.batchDepth > 0 || p.flushing {
		return
	}
	p.flush()
}

// flush drains the queue for the current update instant. Derived containers
// run first, in ascending depth order, so every node reads fully settled
// sources; watchers run after all recomputation. A listener that enqueues
// further work (a derived container notifying its own subscribers, or a
// watcher writing a source) extends the same drain.
//
// A panic from user code unwinds to whoever triggered the update. The queue
// is reset on the way out so the graph stays usable; every container keeps
// its previously published value.
func (p *propagation) flush() {
	p.flushing = true
	defer func() {
		p.flushing = false
		if r := recover(); r != nil {
			p.queue = nil
			clear(p.queued)
			panic(r)
		}
	}()

	for len(p.queue) > 0 {
		l := p.take()
		delete(p.queued, l.ID())
		l.MarkDirty()
	}
}

// take removes and returns the next listener to run: the queued node with
// the smallest depth, or the oldest watcher when no node remains.
func (p *propagation) take() Listener {
	best := -1
	bestDepth := 0

	for i, l := range p.queue {
		n, ok := l.(node)
		if !ok {
			continue
		}
		if best == -1 || n.depth() < bestDepth {
			best = i
			bestDepth = n.depth()
		}
	}

	if best == -1 {
		best = 0 // no nodes pending: oldest watcher
	}

	l := p.queue[best]
	p.queue = append(p.queue[:best], p.queue[best+1:]...)
	return l
}
