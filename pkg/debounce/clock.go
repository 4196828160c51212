package debounce

import "time"

// Clock abstracts the timer facility the scheduler runs on. The default is
// the system clock; tests swap in a manually driven clock to make timing
// deterministic.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d elapses and returns a handle
	// that can stop the pending execution.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable scheduled execution. Stop reports whether the
// execution was prevented from running.
type Timer interface {
	Stop() bool
}

// systemClock is the real-time Clock used unless WithClock overrides it.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
