package bindtest

import (
	"sync"
	"time"

	"github.com/vango-dev/bind/pkg/debounce"
)

// ManualClock implements debounce.Clock with time that moves only when the
// test advances it. Timers fire synchronously inside Advance, in deadline
// order, so a test can drive a whole burst-and-settle cycle without
// sleeping.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
	seq    uint64
}

// NewManualClock creates a clock starting at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc arms a timer that fires fn when the clock advances past d from
// now.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{
		clock:    c,
		deadline: c.now.Add(d),
		seq:      c.seq,
		fn:       fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every due timer in deadline
// order. A timer armed by a firing callback is honored within the same
// advance when its deadline falls inside the window, so reschedule loops
// play out the way they would in real time.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.nextDueLocked(target)
		if t == nil {
			break
		}
		if t.deadline.After(c.now) {
			// The callback observes the time it was scheduled for.
			c.now = t.deadline
		}
		c.removeLocked(t)
		t.stopped = true
		fn := t.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// TimerCount returns how many timers are armed. Useful for asserting that
// a cancel released its timer.
func (c *ManualClock) TimerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// nextDueLocked returns the earliest timer due at or before target, ties
// broken by arming order. Caller holds mu.
func (c *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// removeLocked unlinks t from the armed set. Caller holds mu.
func (c *ManualClock) removeLocked(t *manualTimer) {
	for i, cand := range c.timers {
		if cand == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop implements debounce.Timer. It reports whether the timer was still
// armed.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.clock.removeLocked(t)
	return true
}
