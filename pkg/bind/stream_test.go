package bind

import "testing"

func TestEmitterFanOut(t *testing.T) {
	e := NewEmitter[int]()

	var a, b []int
	e.Subscribe(func(v int) { a = append(a, v) })
	e.Subscribe(func(v int) { b = append(b, v) })

	e.Emit(1)
	e.Emit(2)

	if len(a) != 2 || a[0] != 1 || a[1] != 2 {
		t.Errorf("subscriber a expected [1 2], got %v", a)
	}
	if len(b) != 2 {
		t.Errorf("subscriber b expected 2 events, got %d", len(b))
	}
	if e.SubscriberCount() != 2 {
		t.Errorf("expected 2 subscribers, got %d", e.SubscriberCount())
	}
}

func TestEmitterUnsubscribe(t *testing.T) {
	e := NewEmitter[string]()

	var got []string
	unsub := e.Subscribe(func(v string) { got = append(got, v) })

	e.Emit("keep")
	unsub()
	unsub() // idempotent
	e.Emit("drop")

	if len(got) != 1 || got[0] != "keep" {
		t.Errorf("expected only %q delivered, got %v", "keep", got)
	}
	if e.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", e.SubscriberCount())
	}
}

func TestEmitterClose(t *testing.T) {
	e := NewEmitter[int]()

	delivered := 0
	e.Subscribe(func(int) { delivered++ })

	e.Close()
	e.Close() // idempotent
	e.Emit(1)

	if delivered != 0 {
		t.Errorf("expected no delivery after close, got %d", delivered)
	}

	// Subscribing after close is a no-op with a callable unsubscribe.
	unsub := e.Subscribe(func(int) { t.Error("closed emitter must not deliver") })
	unsub()
	e.Emit(2)
}

func TestFeedIntoSource(t *testing.T) {
	e := NewEmitter[int]()
	src := NewSource(0)

	stop := Feed[int](e, src)

	e.Emit(7)
	if src.Get() != 7 {
		t.Errorf("expected 7, got %d", src.Get())
	}

	stop()
	e.Emit(8)
	if src.Get() != 7 {
		t.Errorf("expected feed stopped at 7, got %d", src.Get())
	}
}

func TestLatestMaterializesStream(t *testing.T) {
	e := NewEmitter[string]()

	c, stop := Latest[string](e, "initial")
	defer stop()

	if c.Get() != "initial" {
		t.Errorf("expected %q, got %q", "initial", c.Get())
	}

	// Composition over a stream-backed container.
	upper := Map(c, func(s string) string { return s + "!" })

	e.Emit("fresh")
	if c.Get() != "fresh" {
		t.Errorf("expected %q, got %q", "fresh", c.Get())
	}
	if upper.Get() != "fresh!" {
		t.Errorf("expected %q, got %q", "fresh!", upper.Get())
	}
}

func TestTypedSources(t *testing.T) {
	n := NewIntSource(10)
	n.Inc()
	n.Add(5)
	n.Sub(1)
	n.Dec()
	if n.Get() != 14 {
		t.Errorf("expected 14, got %d", n.Get())
	}

	f := NewFloat64Source(2)
	f.Scale(3)
	f.Add(1)
	if f.Get() != 7 {
		t.Errorf("expected 7, got %v", f.Get())
	}

	b := NewBoolSource(false)
	b.Toggle()
	if !b.Get() {
		t.Error("expected true after toggle")
	}

	s := NewStringSource("a")
	s.Append("b")
	if s.Get() != "ab" {
		t.Errorf("expected %q, got %q", "ab", s.Get())
	}
	s.Clear()
	if s.Get() != "" {
		t.Errorf("expected empty string, got %q", s.Get())
	}
}
