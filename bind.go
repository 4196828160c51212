// Package bind provides the public API for the bind reactive library.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/bind"
//
// Usage:
//
//	qty := bind.NewSource(1)
//	price := bind.NewSource(9.99)
//	total := bind.Compose2(qty, price, func(q int, p float64) float64 {
//		return float64(q) * p
//	})
//	stop := total.Watch(func(v float64) { fmt.Println("total:", v) })
//	defer stop()
//	qty.Set(3)
package bind

import (
	"time"

	corebind "github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/debounce"
	"github.com/vango-dev/bind/pkg/interp"
)

// =============================================================================
// Containers (re-export from pkg/bind)
// =============================================================================

// Container is a readable reactive value: current value plus change
// notification. Sources, constants, and composed values all satisfy it.
type Container[T any] = corebind.Container[T]

// Source is a writable container.
type Source[T any] = corebind.Source[T]

// Cleanup releases a watcher or stream subscription.
type Cleanup = corebind.Cleanup

// NewSource creates a writable container with the given initial value.
//
// Example:
//
//	count := bind.NewSource(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSource[T any](initial T, opts ...SourceOption) *Source[T] {
	return corebind.NewSource(initial, opts...)
}

// Const wraps a fixed value as a container. Watching it is a no-op.
func Const[T any](v T) Container[T] {
	return corebind.Const(v)
}

// Lift converts a plain value or an existing container to a Container[T].
// Plain values become constants.
func Lift[T any](x any) Container[T] {
	return corebind.Lift[T](x)
}

// IsConstant reports whether x is a container that never changes.
var IsConstant = corebind.IsConstant

// Source options
type SourceOption = corebind.SourceOption

// Transient marks a source as excluded from snapshots.
var Transient = corebind.Transient

// PersistKey names a source for snapshot capture and restore.
var PersistKey = corebind.PersistKey

// Typed source shorthands
type IntSource = corebind.IntSource
type Float64Source = corebind.Float64Source
type BoolSource = corebind.BoolSource
type StringSource = corebind.StringSource

var NewIntSource = corebind.NewIntSource
var NewFloat64Source = corebind.NewFloat64Source
var NewBoolSource = corebind.NewBoolSource
var NewStringSource = corebind.NewStringSource

// =============================================================================
// Deriving and composing (re-export from pkg/bind)
// =============================================================================

// Map derives a container by applying f to a source value. The source
// may be a container or a plain value; plain values yield a constant.
//
// Example:
//
//	label := bind.Map(count, func(n int) string {
//		return fmt.Sprintf("%d items", n)
//	})
func Map[T, U any](source any, f func(T) U) Container[U] {
	return corebind.Map(source, f)
}

// Derive is Map for a statically typed container input.
func Derive[T, U any](src Container[T], f func(T) U) Container[U] {
	return corebind.Derive(src, f)
}

// Compose derives one container from any number of inputs. Inputs may be
// containers or plain values. The combiner sees all current values as a
// slice, in input order, and reruns once per upstream change.
func Compose[R any](combiner func(vals []any) R, inputs ...any) Container[R] {
	return corebind.Compose(combiner, inputs...)
}

// Compose2 composes two typed inputs.
//
// Example:
//
//	total := bind.Compose2(qty, price, func(q int, p float64) float64 {
//		return float64(q) * p
//	})
func Compose2[A, B, R any](a, b any, combiner func(A, B) R) Container[R] {
	return corebind.Compose2(a, b, combiner)
}

// Compose3 composes three typed inputs.
func Compose3[A, B, C, R any](a, b, c any, combiner func(A, B, C) R) Container[R] {
	return corebind.Compose3(a, b, c, combiner)
}

// Compose4 composes four typed inputs.
func Compose4[A, B, C, D, R any](a, b, c, d any, combiner func(A, B, C, D) R) Container[R] {
	return corebind.Compose4(a, b, c, d, combiner)
}

// Join collects inputs into one container holding their current values
// as a slice, updated atomically when any input changes.
var Join = corebind.Join

// Batch groups multiple source updates into a single propagation, so
// downstream values recompute once.
var Batch = corebind.Batch

// =============================================================================
// Watching (re-export from pkg/bind)
// =============================================================================

// Scope owns a set of watchers and releases them together.
type Scope = corebind.Scope

// NewScope creates a scope, optionally nested under a parent.
var NewScope = corebind.NewScope

// WatchScoped watches a container for the lifetime of the scope.
func WatchScoped[T any](s *Scope, c Container[T], fn func(T)) (stop func()) {
	return corebind.WatchScoped(s, c, fn)
}

// SkipFirst wraps fn so its first call is dropped.
var SkipFirst = corebind.SkipFirst

// SkipFirstOf wraps a value callback so its first call is dropped.
func SkipFirstOf[T any](fn func(T)) func(T) {
	return corebind.SkipFirstOf(fn)
}

// =============================================================================
// Streams (re-export from pkg/bind)
// =============================================================================

// Stream is a push-based event feed convertible into a container.
type Stream[T any] = corebind.Stream[T]

// Emitter is a Stream you can emit values into.
type Emitter[T any] = corebind.Emitter[T]

// NewEmitter creates an Emitter.
func NewEmitter[T any]() *Emitter[T] {
	return corebind.NewEmitter[T]()
}

// Feed forwards stream values into a source until stopped.
func Feed[T any](s Stream[T], src *Source[T]) (stop func()) {
	return corebind.Feed(s, src)
}

// Latest exposes the most recent stream value as a container.
func Latest[T any](s Stream[T], initial T) (Container[T], Cleanup) {
	return corebind.Latest(s, initial)
}

// =============================================================================
// Debounce (re-export from pkg/debounce)
// =============================================================================

// Debounced coalesces bursts of calls into single invocations.
type Debounced[A, R any] = debounce.Debounced[A, R]

// DebounceOption configures a Debounced.
type DebounceOption = debounce.Option

// NewDebounced wraps fn so calls within the wait window coalesce into
// one trailing invocation.
//
// Example:
//
//	save := bind.NewDebounced(doSave, 500*time.Millisecond)
//	save.Call(doc) // repeated calls coalesce
//	defer save.Cancel()
func NewDebounced[A, R any](fn func(A) R, wait time.Duration, opts ...DebounceOption) *Debounced[A, R] {
	return debounce.New(fn, wait, opts...)
}

// NewThrottle wraps fn so it runs at most once per interval, on the
// leading edge, with a trailing call for bursts.
func NewThrottle[A, R any](fn func(A) R, interval time.Duration, opts ...DebounceOption) *Debounced[A, R] {
	return debounce.NewThrottle(fn, interval, opts...)
}

// DebouncedState is a value slot whose setter is debounced.
type DebouncedState[T any] = debounce.State[T]

// NewDebouncedState creates a DebouncedState around a fresh source.
func NewDebouncedState[T any](initial T, wait time.Duration, opts ...DebounceOption) *DebouncedState[T] {
	return debounce.NewState(initial, wait, opts...)
}

// Debounce options
var MaxWait = debounce.MaxWait
var Leading = debounce.Leading
var TrailingOff = debounce.TrailingOff

// =============================================================================
// Interpolation (re-export from pkg/interp)
// =============================================================================

// Color is a 32-bit ARGB color.
type Color = interp.Color

// Lerp interpolates between from and to. Alpha is not clamped, so
// values outside [0,1] extrapolate.
var Lerp = interp.Lerp

// MapRange maps v from one range onto another, unclamped.
var MapRange = interp.MapRange

// Clamp01 clamps v to [0,1].
var Clamp01 = interp.Clamp01

// Interpolate derives a float container from an alpha container.
//
// Example:
//
//	width := bind.Interpolate(progress, 0, 320)
func Interpolate(alpha any, from, to float64) Container[float64] {
	return interp.Bind(alpha, from, to)
}

// InterpolateColor derives a color ramp from an alpha container.
func InterpolateColor(alpha any, from, to Color) Container[Color] {
	return interp.BindColor(alpha, from, to)
}

// FadeColor derives c with its alpha channel scaled by an opacity
// container, clamped to [0,1].
func FadeColor(opacity any, c Color) Container[Color] {
	return interp.BindFade(opacity, c)
}
