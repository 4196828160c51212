// Package debounce provides a timed coalescing scheduler: bursts of calls
// collapse into a single delayed invocation of the wrapped function, with
// explicit cancel/flush/pending control and synchronous access to the last
// computed result.
//
// Each scheduler is a small two-state machine. It sits Idle until a call
// arrives, then holds Pending while a timer is live. Every call while
// Pending replaces the pending argument and resets the wait window; with a
// maxWait bound configured, the invocation fires no later than maxWait
// after the first call of the burst regardless of resets.
//
//	save := debounce.New(writeDraft, 300*time.Millisecond)
//	defer save.Cancel()
//
//	for _, edit := range edits {
//	    save.Call(edit) // one writeDraft per quiet period
//	}
//
// Instances are safe for concurrent use. The wrapped function runs without
// internal locks held, so it may call back into the scheduler; with the
// system clock a slow invocation can overlap a later one.
package debounce

import (
	"errors"
	"sync"
	"time"
)

// Construction misuse panics with one of these sentinels.
var (
	// ErrNegativeWait reports a negative wait duration.
	ErrNegativeWait = errors.New("debounce: negative wait")

	// ErrNegativeMaxWait reports a negative maxWait duration.
	ErrNegativeMaxWait = errors.New("debounce: negative maxWait")

	// ErrMaxWaitBelowWait reports a maxWait shorter than wait, which
	// would make the bound meaningless.
	ErrMaxWaitBelowWait = errors.New("debounce: maxWait shorter than wait")
)

// config holds scheduler options.
type config struct {
	maxWait  time.Duration
	leading  bool
	trailing bool
	clock    Clock
	observer Observer
}

// Option configures a scheduler at construction.
type Option func(*config)

// MaxWait bounds the total delay of a burst: the wrapped function fires no
// later than d after the burst's first call, even while calls keep
// resetting the wait window.
func MaxWait(d time.Duration) Option {
	return func(c *config) {
		c.maxWait = d
	}
}

// Leading makes the scheduler invoke immediately on the first call of a
// burst, in addition to the trailing edge.
func Leading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// TrailingOff disables the trailing-edge invocation. Combine with Leading
// for fire-first semantics.
func TrailingOff() Option {
	return func(c *config) {
		c.trailing = false
	}
}

// WithClock substitutes the timer facility. Tests use this with a manually
// driven clock.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithObserver attaches an instrumentation hook.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// Debounced wraps a function so bursts of calls coalesce into single
// invocations. Construct with New; the zero value is not usable.
type Debounced[A, R any] struct {
	mu sync.Mutex

	fn       func(A) R
	wait     time.Duration
	maxWait  time.Duration
	leading  bool
	trailing bool
	clock    Clock
	observer Observer

	// timer is the live handle while Pending. At most one exists; gen
	// stamps each arming so a stale fire from a replaced timer is ignored.
	timer     Timer
	gen       uint64
	timerLive bool

	// pendingArg is the most recent call's argument, valid while
	// argPending. A leading-edge invocation consumes it, so the trailing
	// edge fires only when further calls arrive in the window.
	pendingArg A
	argPending bool

	// deadline is when the live timer fires; burstStart anchors the
	// maxWait bound to the first call of the burst.
	deadline   time.Time
	burstStart time.Time
	burstCalls int

	// last is the return value of the most recent completed invocation.
	last R
}

// New wraps fn in a debounce scheduler with the given quiet-period wait.
// It panics with ErrNegativeWait, ErrNegativeMaxWait, or
// ErrMaxWaitBelowWait when the configuration is outside its valid domain.
//
// The caller owns the scheduler's lifetime and must call Cancel on
// teardown so no timer outlives its owner.
func New[A, R any](fn func(A) R, wait time.Duration, opts ...Option) *Debounced[A, R] {
	if wait < 0 {
		panic(ErrNegativeWait)
	}

	cfg := config{trailing: true, clock: systemClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxWait < 0 {
		panic(ErrNegativeMaxWait)
	}
	if cfg.maxWait > 0 && cfg.maxWait < wait {
		panic(ErrMaxWaitBelowWait)
	}

	return &Debounced[A, R]{
		fn:       fn,
		wait:     wait,
		maxWait:  cfg.maxWait,
		leading:  cfg.leading,
		trailing: cfg.trailing,
		clock:    cfg.clock,
		observer: cfg.observer,
	}
}

// NewThrottle wraps fn so it runs at most once per interval while calls
// keep arriving: a leading invocation at the start of a burst, then one per
// interval, then a trailing invocation with the final argument. It is the
// same machine as New with Leading and MaxWait(interval).
func NewThrottle[A, R any](fn func(A) R, interval time.Duration, opts ...Option) *Debounced[A, R] {
	opts = append(opts, Leading(), MaxWait(interval))
	return New(fn, interval, opts...)
}

// Call records arg as the pending call, overwriting any previous pending
// argument, and (re)schedules invocation. When leading is enabled and the
// scheduler is Idle, fn runs synchronously with this argument before Call
// returns. The return value is the result of the most recent completed
// invocation; a call that is merely scheduled returns the previous result.
func (d *Debounced[A, R]) Call(arg A) R {
	var invoke bool

	d.mu.Lock()
	now := d.clock.Now()
	if !d.timerLive {
		d.burstStart = now
		d.burstCalls = 0
	}
	d.burstCalls++
	d.pendingArg = arg
	d.argPending = true

	if d.leading && !d.timerLive {
		// Leading edge consumes the argument; the window still opens so
		// the trailing edge covers later calls only.
		d.argPending = false
		invoke = true
	}

	calls := d.burstCalls
	start := d.burstStart
	d.arm(now)
	d.mu.Unlock()

	if invoke {
		d.invoke(arg, EdgeLeading, calls, start)
	}

	return d.Last()
}

// Cancel discards the live timer and pending argument and returns the
// scheduler to Idle. No invocation happens for the cancelled burst; the
// last result is left untouched. Idempotent: cancelling an Idle scheduler
// is a no-op.
func (d *Debounced[A, R]) Cancel() {
	d.mu.Lock()
	wasLive := d.timerLive
	calls := d.burstCalls
	d.disarm()
	d.mu.Unlock()

	if wasLive && d.observer != nil {
		d.observer.Cancelled(calls)
	}
}

// Flush invokes fn immediately and synchronously with the pending argument
// if one exists, records the result, and returns the scheduler to Idle.
// When Idle, or when a leading invocation already consumed the only call of
// the burst, Flush invokes nothing. It returns the last result in every
// case, so a natural timer expiry can never double-invoke a flushed burst.
func (d *Debounced[A, R]) Flush() R {
	var invoke bool
	var arg A
	var calls int
	var start time.Time

	d.mu.Lock()
	if d.timerLive {
		invoke = d.argPending
		arg = d.pendingArg
		calls = d.burstCalls
		start = d.burstStart
		d.disarm()
	}
	d.mu.Unlock()

	if invoke {
		return d.invoke(arg, EdgeFlush, calls, start)
	}
	return d.Last()
}

// Pending reports whether an invocation window is open (a timer is live).
func (d *Debounced[A, R]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timerLive
}

// Last returns the result of the most recent completed invocation, or the
// zero value if fn has never run.
func (d *Debounced[A, R]) Last() R {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// arm starts or replaces the timer for the current burst. Caller holds mu.
func (d *Debounced[A, R]) arm(now time.Time) {
	deadline := now.Add(d.wait)
	if d.maxWait > 0 {
		if bound := d.burstStart.Add(d.maxWait); deadline.After(bound) {
			deadline = bound
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.deadline = deadline
	d.timerLive = true
	d.timer = d.clock.AfterFunc(deadline.Sub(now), func() { d.expire(gen) })
}

// disarm stops the timer and clears all pending state. Caller holds mu.
func (d *Debounced[A, R]) disarm() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.timerLive = false
	d.argPending = false
	d.burstCalls = 0
	var zero A
	d.pendingArg = zero
}

// expire is the timer callback for the arming stamped gen. A stale fire
// from a timer that was replaced or stopped after the clock committed to
// running it is ignored.
func (d *Debounced[A, R]) expire(gen uint64) {
	var invoke bool
	var arg A

	d.mu.Lock()
	if gen != d.gen || !d.timerLive {
		d.mu.Unlock()
		return
	}
	invoke = d.argPending && d.trailing
	arg = d.pendingArg
	calls := d.burstCalls
	start := d.burstStart
	d.timer = nil
	d.timerLive = false
	d.argPending = false
	d.burstCalls = 0
	var zero A
	d.pendingArg = zero
	d.mu.Unlock()

	if invoke {
		d.invoke(arg, EdgeTrailing, calls, start)
	}
}

// invoke runs fn outside the lock and records its result.
func (d *Debounced[A, R]) invoke(arg A, edge Edge, calls int, start time.Time) R {
	r := d.fn(arg)

	d.mu.Lock()
	d.last = r
	d.mu.Unlock()

	if d.observer != nil {
		d.observer.Invoked(Stats{
			Edge:    edge,
			Calls:   calls,
			Latency: d.clock.Now().Sub(start),
		})
	}
	return r
}
