package bind

import (
	"strconv"
	"sync/atomic"
	"testing"
)

func TestDeriveEagerInitial(t *testing.T) {
	src := NewSource(4)

	var calls atomic.Int64
	doubled := Derive(src, func(n int) int {
		calls.Add(1)
		return n * 2
	})

	// Computed at construction, before any read.
	if calls.Load() != 1 {
		t.Errorf("expected 1 computation at construction, got %d", calls.Load())
	}
	if doubled.Get() != 8 {
		t.Errorf("expected 8, got %d", doubled.Get())
	}

	// Reads do not recompute.
	_ = doubled.Get()
	_ = doubled.Get()
	if calls.Load() != 1 {
		t.Errorf("reads must not recompute, got %d computations", calls.Load())
	}
}

func TestDeriveRecomputesPerUpdate(t *testing.T) {
	src := NewSource(1)

	var calls atomic.Int64
	squared := Derive(src, func(n int) int {
		calls.Add(1)
		return n * n
	})

	src.Set(3)
	if squared.Get() != 9 {
		t.Errorf("expected 9, got %d", squared.Get())
	}
	src.Set(5)
	if squared.Get() != 25 {
		t.Errorf("expected 25, got %d", squared.Get())
	}

	// One at construction plus one per update.
	if calls.Load() != 3 {
		t.Errorf("expected 3 computations, got %d", calls.Load())
	}
}

func TestMapPlainValueIsConstant(t *testing.T) {
	var calls atomic.Int64
	c := Map(5, func(n int) string {
		calls.Add(1)
		return strconv.Itoa(n * 10)
	})

	if c.Get() != "50" {
		t.Errorf("expected %q, got %q", "50", c.Get())
	}
	if !c.isConstant() {
		t.Error("mapping a plain value must yield a constant container")
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 computation, got %d", calls.Load())
	}
}

func TestMapContainerTracksSource(t *testing.T) {
	src := NewSource(5)
	c := Map(src, func(n int) int { return n + 1 })

	if c.Get() != 6 {
		t.Errorf("expected 6, got %d", c.Get())
	}

	src.Set(41)
	if c.Get() != 42 {
		t.Errorf("expected 42, got %d", c.Get())
	}
}

func TestDeriveConstantSourceNoSubscription(t *testing.T) {
	base := Const(3)
	c := Derive(base, func(n int) int { return n * 7 })

	if c.Get() != 21 {
		t.Errorf("expected 21, got %d", c.Get())
	}
	if !c.isConstant() {
		t.Error("deriving from a constant must yield a constant")
	}
}

func TestDeriveChain(t *testing.T) {
	src := NewSource(2)
	a := Derive(src, func(n int) int { return n + 1 })
	b := Derive(a, func(n int) int { return n * 10 })

	if b.Get() != 30 {
		t.Errorf("expected 30, got %d", b.Get())
	}

	src.Set(9)
	if b.Get() != 100 {
		t.Errorf("expected 100, got %d", b.Get())
	}
}

func TestDerivedWatchRunsAfterRecompute(t *testing.T) {
	src := NewSource(1)
	doubled := Derive(src, func(n int) int { return n * 2 })

	// A watcher on the SOURCE must already observe the settled derived
	// value: recomputation finishes before watchers run.
	var seen []int
	src.Watch(func(int) {
		seen = append(seen, doubled.Get())
	})

	rec := &recorder[int]{}
	doubled.Watch(rec.record)

	src.Set(10)

	if len(seen) != 1 || seen[0] != 20 {
		t.Errorf("source watcher expected settled derived value [20], got %v", seen)
	}
	if rec.count() != 1 || rec.last() != 20 {
		t.Errorf("derived watcher expected [20], got %v", rec.values)
	}
}

func TestDerivedWatchStop(t *testing.T) {
	src := NewSource(1)
	c := Derive(src, func(n int) int { return -n })
	rec := &recorder[int]{}

	stop := c.Watch(rec.record)
	src.Set(2)
	stop()
	src.Set(3)

	if rec.count() != 1 {
		t.Errorf("expected 1 notification, got %d", rec.count())
	}
	if c.Get() != -3 {
		t.Errorf("derived keeps recomputing after watch stops, expected -3, got %d", c.Get())
	}
}

func TestSkipFirstOfWithWatch(t *testing.T) {
	src := NewSource(0)
	rec := &recorder[int]{}

	src.Watch(SkipFirstOf(rec.record))

	src.Set(1) // suppressed
	src.Set(2)
	src.Set(3)

	if rec.count() != 2 {
		t.Errorf("expected first notification suppressed, got %d notifications", rec.count())
	}
	if rec.last() != 3 {
		t.Errorf("expected last value 3, got %d", rec.last())
	}
}
