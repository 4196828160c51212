package debounce_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/bindtest"
	"github.com/vango-dev/bind/pkg/debounce"
)

// collector records invocation arguments in order.
type collector struct {
	mu   sync.Mutex
	args []int
}

func (c *collector) fn(arg int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.args = append(c.args, arg)
	return arg * 2
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.args)
}

func (c *collector) got() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.args))
	copy(out, c.args)
	return out
}

func expectArgs(t *testing.T, c *collector, want ...int) {
	t.Helper()
	got := c.got()
	if len(got) != len(want) {
		t.Fatalf("expected %d invocations %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected invocation %d with arg %d, got %d", i, want[i], got[i])
		}
	}
}

func TestBurstCoalescesToOneInvocation(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	for i := 0; i < 10; i++ {
		d.Call(i)
		clock.Advance(10 * time.Millisecond)
	}
	if c.count() != 0 {
		t.Fatalf("expected no invocation inside the burst, got %d", c.count())
	}

	clock.Advance(100 * time.Millisecond)
	expectArgs(t, &c, 9)
}

func TestWaitWindowResetsPerCall(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	d.Call(1)
	clock.Advance(50 * time.Millisecond)
	d.Call(2)

	// The first call's deadline has passed, but the second reset it.
	clock.Advance(99 * time.Millisecond)
	if c.count() != 0 {
		t.Fatalf("expected reset window to hold, got %d invocations", c.count())
	}

	clock.Advance(1 * time.Millisecond)
	expectArgs(t, &c, 2)
}

func TestMaxWaitBoundsBurstLatency(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond,
		debounce.WithClock(clock),
		debounce.MaxWait(300*time.Millisecond))
	defer d.Cancel()

	// Calls every 50ms never let the quiet period elapse; maxWait fires
	// the invocation 300ms after the burst began anyway.
	for i := 0; i < 6; i++ {
		d.Call(i)
		clock.Advance(50 * time.Millisecond)
	}
	expectArgs(t, &c, 5)
}

func TestFlushInvokesPendingOnce(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	d.Call(21)
	r := d.Flush()
	if r != 42 {
		t.Errorf("expected flush result 42, got %d", r)
	}
	expectArgs(t, &c, 21)
	if d.Pending() {
		t.Error("expected scheduler to be idle after flush")
	}

	// The displaced timer must not fire a second invocation later.
	clock.Advance(500 * time.Millisecond)
	expectArgs(t, &c, 21)
}

func TestFlushIdleReturnsLast(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	if r := d.Flush(); r != 0 {
		t.Errorf("expected zero result before any invocation, got %d", r)
	}

	d.Call(3)
	clock.Advance(100 * time.Millisecond)
	if r := d.Flush(); r != 6 {
		t.Errorf("expected idle flush to return last result 6, got %d", r)
	}
	expectArgs(t, &c, 3)
}

func TestCancelDiscardsBurst(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))

	d.Call(1)
	d.Call(2)
	d.Cancel()

	if d.Pending() {
		t.Error("expected idle after cancel")
	}
	if clock.TimerCount() != 0 {
		t.Errorf("expected cancel to release its timer, got %d armed", clock.TimerCount())
	}

	clock.Advance(500 * time.Millisecond)
	if c.count() != 0 {
		t.Fatalf("expected no invocation after cancel, got %d", c.count())
	}

	d.Cancel() // idempotent
}

func TestLeadingSolitaryCallFiresOnce(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond,
		debounce.WithClock(clock), debounce.Leading())
	defer d.Cancel()

	r := d.Call(7)
	if r != 14 {
		t.Errorf("expected leading call to return fresh result 14, got %d", r)
	}
	expectArgs(t, &c, 7)

	// No further calls arrived, so the trailing edge has nothing to do.
	clock.Advance(200 * time.Millisecond)
	expectArgs(t, &c, 7)
}

func TestLeadingThenTrailingCoversLaterCalls(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond,
		debounce.WithClock(clock), debounce.Leading())
	defer d.Cancel()

	d.Call(1)
	clock.Advance(50 * time.Millisecond)
	d.Call(2)
	clock.Advance(100 * time.Millisecond)

	expectArgs(t, &c, 1, 2)
}

func TestLeadingOnlySuppressesTrailing(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond,
		debounce.WithClock(clock), debounce.Leading(), debounce.TrailingOff())
	defer d.Cancel()

	d.Call(1)
	clock.Advance(50 * time.Millisecond)
	d.Call(2)
	clock.Advance(200 * time.Millisecond)
	expectArgs(t, &c, 1)

	// Once idle again, the next burst gets its own leading edge.
	d.Call(3)
	expectArgs(t, &c, 1, 3)
}

func TestLastTracksMostRecentResult(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer d.Cancel()

	d.Call(3)
	d.Flush()
	if d.Last() != 6 {
		t.Errorf("expected last result 6, got %d", d.Last())
	}

	if r := d.Call(4); r != 6 {
		t.Errorf("expected scheduled call to return previous result 6, got %d", r)
	}
	clock.Advance(100 * time.Millisecond)
	if d.Last() != 8 {
		t.Errorf("expected last result 8 after settle, got %d", d.Last())
	}
}

func TestConstructionPanics(t *testing.T) {
	cases := []struct {
		name string
		make func()
		want error
	}{
		{"negative wait", func() {
			debounce.New(func(int) int { return 0 }, -time.Second)
		}, debounce.ErrNegativeWait},
		{"negative maxWait", func() {
			debounce.New(func(int) int { return 0 }, time.Second,
				debounce.MaxWait(-time.Second))
		}, debounce.ErrNegativeMaxWait},
		{"maxWait below wait", func() {
			debounce.New(func(int) int { return 0 }, time.Second,
				debounce.MaxWait(500*time.Millisecond))
		}, debounce.ErrMaxWaitBelowWait},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected construction to panic")
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, tc.want) {
					t.Errorf("expected panic with %v, got %v", tc.want, r)
				}
			}()
			tc.make()
		})
	}

	// maxWait equal to wait is valid.
	d := debounce.New(func(int) int { return 0 }, time.Second,
		debounce.MaxWait(time.Second))
	d.Cancel()
}

func TestThrottleCadence(t *testing.T) {
	clock := bindtest.NewManualClock()
	var c collector
	th := debounce.NewThrottle(c.fn, 100*time.Millisecond, debounce.WithClock(clock))
	defer th.Cancel()

	for i := 0; i < 8; i++ {
		th.Call(i)
		clock.Advance(25 * time.Millisecond)
	}

	// Leading edge of each interval plus the trailing catch-up.
	expectArgs(t, &c, 0, 3, 4, 7)
}

type statsRecorder struct {
	mu        sync.Mutex
	invoked   []debounce.Stats
	cancelled []int
}

func (o *statsRecorder) Invoked(s debounce.Stats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.invoked = append(o.invoked, s)
}

func (o *statsRecorder) Cancelled(pendingCalls int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelled = append(o.cancelled, pendingCalls)
}

func TestObserverSeesBurstStats(t *testing.T) {
	clock := bindtest.NewManualClock()
	obs := &statsRecorder{}
	var c collector
	d := debounce.New(c.fn, 100*time.Millisecond,
		debounce.WithClock(clock), debounce.WithObserver(obs))
	defer d.Cancel()

	d.Call(1)
	clock.Advance(10 * time.Millisecond)
	d.Call(2)
	clock.Advance(10 * time.Millisecond)
	d.Call(3)
	clock.Advance(100 * time.Millisecond)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.invoked) != 1 {
		t.Fatalf("expected 1 invoked event, got %d", len(obs.invoked))
	}
	s := obs.invoked[0]
	if s.Edge != debounce.EdgeTrailing {
		t.Errorf("expected trailing edge, got %v", s.Edge)
	}
	if s.Calls != 3 {
		t.Errorf("expected 3 coalesced calls, got %d", s.Calls)
	}
	if s.Latency != 120*time.Millisecond {
		t.Errorf("expected 120ms burst latency, got %v", s.Latency)
	}
}

func TestObserverSeesCancellation(t *testing.T) {
	clock := bindtest.NewManualClock()
	obs := &statsRecorder{}
	d := debounce.New(func(int) int { return 0 }, 100*time.Millisecond,
		debounce.WithClock(clock), debounce.WithObserver(obs))

	d.Call(1)
	d.Call(2)
	d.Cancel()
	d.Cancel() // second cancel is a no-op and reports nothing

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.cancelled) != 1 || obs.cancelled[0] != 2 {
		t.Errorf("expected one cancellation with 2 pending calls, got %v", obs.cancelled)
	}
}

func TestEdgeString(t *testing.T) {
	cases := map[debounce.Edge]string{
		debounce.EdgeLeading:  "leading",
		debounce.EdgeTrailing: "trailing",
		debounce.EdgeFlush:    "flush",
		debounce.Edge(99):     "unknown",
	}
	for edge, want := range cases {
		if got := edge.String(); got != want {
			t.Errorf("expected Edge %d to format as %q, got %q", int(edge), want, got)
		}
	}
}

func TestStateSettlesOnce(t *testing.T) {
	clock := bindtest.NewManualClock()
	st := debounce.NewState(0, 100*time.Millisecond, debounce.WithClock(clock))
	defer st.Cancel()

	rec := bindtest.NewRecorder[int]()
	stop := st.Watch(rec.Record)
	defer stop()

	st.Set(1)
	st.Set(2)
	st.Set(3)

	if st.Get() != 0 {
		t.Errorf("expected settled value 0 before commit, got %d", st.Get())
	}
	if !st.Pending() {
		t.Error("expected a pending write")
	}
	if v, ok := st.Peek(); !ok || v != 3 {
		t.Errorf("expected pending value 3, got %d (ok=%v)", v, ok)
	}

	clock.Advance(100 * time.Millisecond)
	bindtest.ExpectValue[int](t, st.Container(), 3)
	bindtest.ExpectValues(t, rec, 3)
}

func TestStateFlushAndCancel(t *testing.T) {
	clock := bindtest.NewManualClock()
	st := debounce.NewState("", 100*time.Millisecond, debounce.WithClock(clock))
	defer st.Cancel()

	st.Set("draft")
	if got := st.Flush(); got != "draft" {
		t.Errorf("expected flush to commit %q, got %q", "draft", got)
	}

	st.Set("discarded")
	st.Cancel()
	clock.Advance(500 * time.Millisecond)
	if st.Get() != "draft" {
		t.Errorf("expected cancelled write to be dropped, got %q", st.Get())
	}
	if _, ok := st.Peek(); ok {
		t.Error("expected no pending value after cancel")
	}
}

func TestStateForExistingSource(t *testing.T) {
	clock := bindtest.NewManualClock()
	src := bind.NewSource("start")
	upper := bind.Map[string](src, strings.ToUpper)

	st := debounce.NewStateFor(src, 100*time.Millisecond, debounce.WithClock(clock))
	defer st.Cancel()

	st.Set("next")
	if upper.Get() != "START" {
		t.Errorf("expected derived value START before commit, got %q", upper.Get())
	}

	clock.Advance(100 * time.Millisecond)
	if upper.Get() != "NEXT" {
		t.Errorf("expected derived value NEXT after commit, got %q", upper.Get())
	}
	if st.Source() != src {
		t.Error("expected state to keep the source's identity")
	}
}
