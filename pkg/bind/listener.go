package bind

// Listener is anything that can be notified when a container it observes
// updates. Derived containers implement it to recompute; watchers implement
// it to run their callback after the update settles.
type Listener interface {
	// MarkDirty tells the listener that one of its dependencies changed.
	// It is invoked by the propagation pass, never directly by Set.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during propagation.
	ID() uint64
}

// node is a Listener that participates in ordered recomputation. The
// propagation pass runs nodes in ascending depth order so that a node's
// sources have always settled before the node itself recomputes. Listeners
// that are not nodes (watchers) run only after every node has settled.
type node interface {
	Listener
	depth() int
}

// Cleanup is a function that releases a subscription or other resource.
type Cleanup func()
