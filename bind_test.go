package bind

import (
	"testing"
	"time"

	"github.com/vango-dev/bind/pkg/bindtest"
	"github.com/vango-dev/bind/pkg/debounce"
)

func TestComposeRecomputesOncePerBatch(t *testing.T) {
	qty := NewSource(1)
	price := NewSource(10.0)
	total := Compose2(qty, price, func(q int, p float64) float64 {
		return float64(q) * p
	})

	rec := bindtest.NewRecorder[float64]()
	stop := total.Watch(rec.Record)
	defer stop()

	Batch(func() {
		qty.Set(3)
		price.Set(2.5)
	})

	bindtest.ExpectValues(t, rec, 7.5)
}

func TestLiftPlainValueIsConstant(t *testing.T) {
	c := Lift[int](5)
	if c.Get() != 5 {
		t.Errorf("expected 5, got %d", c.Get())
	}
	if !IsConstant(c) {
		t.Error("expected lifted plain value to be constant")
	}
	if IsConstant(NewSource(5)) {
		t.Error("expected source to be writable")
	}
}

func TestDebouncedCoalesces(t *testing.T) {
	clock := bindtest.NewManualClock()
	calls := 0
	d := NewDebounced(func(n int) int {
		calls++
		return n
	}, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	d.Call(1)
	d.Call(2)
	d.Call(3)
	clock.Advance(100 * time.Millisecond)

	if calls != 1 {
		t.Errorf("expected 1 invocation, got %d", calls)
	}
	if got := d.Last(); got != 3 {
		t.Errorf("expected last result 3, got %d", got)
	}
}

func TestDebouncedStateFlush(t *testing.T) {
	clock := bindtest.NewManualClock()
	s := NewDebouncedState("", 100*time.Millisecond, debounce.WithClock(clock))
	defer s.Cancel()

	s.Set("draft")
	if got := s.Flush(); got != "draft" {
		t.Errorf("expected flushed value draft, got %q", got)
	}
	bindtest.ExpectValue(t, s.Container(), "draft")
}

func TestInterpolateTracksAlpha(t *testing.T) {
	progress := NewSource(0.0)
	width := Interpolate(progress, 0, 320)

	bindtest.ExpectValue(t, width, 0.0)
	progress.Set(0.5)
	bindtest.ExpectValue(t, width, 160.0)
	progress.Set(1.0)
	bindtest.ExpectValue(t, width, 320.0)
}
