package bindtest

import (
	"sync"
	"testing"

	"github.com/vango-dev/bind/pkg/bind"
)

// Recorder collects values delivered to a watch callback in arrival order.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

// NewRecorder creates an empty recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Record appends v. Pass this method as the watch callback:
//
//	stop := total.Watch(rec.Record)
func (r *Recorder[T]) Record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

// Values returns a copy of everything recorded so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Count returns how many values were recorded.
func (r *Recorder[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value, or the zero value if nothing was
// recorded.
func (r *Recorder[T]) Last() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero T
		return zero
	}
	return r.values[len(r.values)-1]
}

// Reset discards everything recorded so far.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
}

// ExpectValue asserts that a container currently holds want.
//
// Example:
//
//	bindtest.ExpectValue(t, total, 13)
func ExpectValue[T comparable](t *testing.T, c bind.Container[T], want T) {
	t.Helper()
	if got := c.Get(); got != want {
		t.Errorf("expected container value %v, got %v", want, got)
	}
}

// ExpectCount asserts on the number of recorded values.
func ExpectCount[T any](t *testing.T, r *Recorder[T], want int) {
	t.Helper()
	if got := r.Count(); got != want {
		t.Errorf("expected %d recorded values, got %d: %v", want, got, r.Values())
	}
}

// ExpectValues asserts that the recorder holds exactly want, in order.
func ExpectValues[T comparable](t *testing.T, r *Recorder[T], want ...T) {
	t.Helper()
	got := r.Values()
	if len(got) != len(want) {
		t.Errorf("expected %d recorded values %v, got %d: %v", len(want), want, len(got), got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected value %v at index %d, got %v", want[i], i, got[i])
		}
	}
}
