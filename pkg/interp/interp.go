// Package interp provides linear interpolation, range mapping, and color
// blending helpers, plus constructors that bind them to reactive alpha
// inputs.
package interp

// Lerp returns the linear interpolation between from and to at alpha.
// Alpha is not clamped: values outside [0, 1] extrapolate.
func Lerp(from, to, alpha float64) float64 {
	return from + (to-from)*alpha
}

// InverseLerp returns where v sits between from and to as a fraction,
// the inverse of Lerp. A degenerate range (from == to) maps to 0.
func InverseLerp(from, to, v float64) float64 {
	if from == to {
		return 0
	}
	return (v - from) / (to - from)
}

// MapRange translates v from the input range to the output range,
// unclamped. Useful for turning scroll offsets, progress counters, and the
// like into display quantities.
func MapRange(v, inFrom, inTo, outFrom, outTo float64) float64 {
	return Lerp(outFrom, outTo, InverseLerp(inFrom, inTo, v))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
