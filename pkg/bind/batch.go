package bind

// Batch groups multiple source updates into a single update instant. All
// writes inside fn are collected; when the outermost batch completes, every
// affected derived container recomputes exactly once against the fully
// updated sources, and watchers run once after that.
//
// Batches nest: propagation only runs when the outermost batch completes.
//
// Example:
//
//	bind.Batch(func() {
//	    width.Set(1920)
//	    height.Set(1080)
//	})
//	// area recomputed once, seeing both new values
func Batch(fn func()) {
	p := currentPropagation()
	p.batchDepth++

	defer func() {
		p.batchDepth--
		if p.batchDepth == 0 {
			p.flushIfIdle()
		}
	}()

	fn()
}
