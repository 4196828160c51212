package debounce

import "time"

// Edge identifies which edge of a burst triggered an invocation.
type Edge int

const (
	// EdgeLeading is an invocation at the start of a burst.
	EdgeLeading Edge = iota

	// EdgeTrailing is an invocation when the wait window closes.
	EdgeTrailing

	// EdgeFlush is an invocation forced by an explicit Flush call.
	EdgeFlush
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeLeading:
		return "leading"
	case EdgeTrailing:
		return "trailing"
	case EdgeFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// Stats describes one completed invocation.
type Stats struct {
	// Edge is the trigger that caused the invocation.
	Edge Edge

	// Calls is how many calls the burst had coalesced when the
	// invocation fired.
	Calls int

	// Latency is the time from the burst's first call to the invocation.
	Latency time.Duration
}

// Observer receives scheduler lifecycle events. Implementations must be
// safe for concurrent use; the scheduler calls them without internal locks
// held.
type Observer interface {
	// Invoked is called after each completed invocation of the wrapped
	// function.
	Invoked(s Stats)

	// Cancelled is called when Cancel discards a live burst,
	// with the number of calls the burst had coalesced.
	Cancelled(pendingCalls int)
}
