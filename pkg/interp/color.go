package interp

import (
	"fmt"
	"math"
)

// Color is a packed 32-bit color, 0xAARRGGBB.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
)

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// Lerp interpolates toward to at alpha, per channel. It satisfies
// Lerper[Color].
func (c Color) Lerp(to Color, alpha float64) Color {
	return LerpColor(c, to, alpha)
}

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(a)<<24 | (c & 0x00FFFFFF)
}

// LerpColor blends from toward to at alpha, per channel. Channels are
// clamped to their valid range, so an extrapolating alpha cannot wrap.
func LerpColor(from, to Color, alpha float64) Color {
	return ARGB(
		lerpChannel(from.A(), to.A(), alpha),
		lerpChannel(from.R(), to.R(), alpha),
		lerpChannel(from.G(), to.G(), alpha),
		lerpChannel(from.B(), to.B(), alpha),
	)
}

// Fade scales the color's alpha channel by opacity, clamped to [0, 1].
// Fading an already translucent color composes rather than overwrites.
func Fade(c Color, opacity float64) Color {
	scaled := math.Round(float64(c.A()) * Clamp01(opacity))
	return c.WithAlpha(uint8(scaled))
}

func lerpChannel(from, to uint8, alpha float64) uint8 {
	v := math.Round(Lerp(float64(from), float64(to), alpha))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
