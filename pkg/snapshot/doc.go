// Package snapshot persists the values of registered sources and restores
// them later, so a graph survives process restarts.
//
// A Registry tracks sources by persist key. Capture serializes their
// current values to JSON; Restore writes a captured snapshot back into the
// sources inside a single batch, so dependents recompute once against the
// fully-restored state.
//
//	reg := snapshot.NewRegistry()
//	qty := bind.NewSource(1, bind.PersistKey("order.qty"))
//	snapshot.Track(reg, qty)
//
//	store, _ := snapshot.NewDiskStore("state")
//	reg.Save(ctx, store, "order")
//	// later, possibly in a new process
//	reg.Load(ctx, store, "order")
//
// Storage backends implement the three-method Store interface. The package
// ships an in-memory store for tests, a disk store, and an S3 store.
// AutoSave watches every tracked source and saves through a debounce
// scheduler, so bursts of edits become one write.
package snapshot
