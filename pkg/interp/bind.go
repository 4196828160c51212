package interp

import "github.com/vango-dev/bind/pkg/bind"

// Lerper is any type that can interpolate toward another value of itself.
type Lerper[T any] interface {
	Lerp(to T, alpha float64) T
}

// Bind returns a container tracking the interpolation between from and to
// as alpha changes. Alpha may be a plain float64 or a container of one; a
// plain alpha yields a constant result. Alpha is not clamped.
func Bind(alpha any, from, to float64) bind.Container[float64] {
	return bind.Map[float64](alpha, func(a float64) float64 {
		return Lerp(from, to, a)
	})
}

// BindColor returns a container tracking the per-channel blend between two
// colors as alpha changes.
func BindColor(alpha any, from, to Color) bind.Container[Color] {
	return bind.Map[float64](alpha, func(a float64) Color {
		return LerpColor(from, to, a)
	})
}

// BindLerper returns a container tracking from.Lerp(to, alpha) for any
// interpolatable type as alpha changes.
func BindLerper[T Lerper[T]](alpha any, from, to T) bind.Container[T] {
	return bind.Map[float64](alpha, func(a float64) T {
		return from.Lerp(to, a)
	})
}

// BindFade returns a container tracking c faded by a reactive opacity.
func BindFade(opacity any, c Color) bind.Container[Color] {
	return bind.Map[float64](opacity, func(o float64) Color {
		return Fade(c, o)
	})
}
