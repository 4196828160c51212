// Package bindtest provides testing helpers for reactive graphs and
// debounce schedulers.
//
// The bindtest package reduces boilerplate when testing time-dependent
// behavior by providing a manually driven clock, a value recorder, and
// assertion helpers.
//
// # Manual Clock
//
// A ManualClock stands in for the system clock so debounce tests are
// deterministic and instant:
//
//	func TestSaveSettles(t *testing.T) {
//	    clock := bindtest.NewManualClock()
//	    save := debounce.New(writeDraft, 300*time.Millisecond,
//	        debounce.WithClock(clock))
//	    defer save.Cancel()
//
//	    save.Call("a")
//	    save.Call("ab")
//	    clock.Advance(300 * time.Millisecond) // fires the trailing edge
//	}
//
// # Recording Watchers
//
// A Recorder collects values delivered to a watch callback so tests can
// assert on notification counts and order:
//
//	rec := bindtest.NewRecorder[int]()
//	stop := total.Watch(rec.Record)
//	defer stop()
//
//	qty.Set(3)
//	bindtest.ExpectValues(t, rec, 12)
package bindtest
