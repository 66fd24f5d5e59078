// Package safemath collects the NaN- and bounds-safe numeric helpers every
// indicator and rule in this module leans on, so that "insufficient
// evidence" is always represented as an explicit NaN rather than a panic,
// a truncated slice, or a silently wrong zero.
package safemath

import "math"

// IsFinite reports whether v is neither NaN nor +/-Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Div returns num/denom, or NaN if denom is zero or too close to zero to
// divide by safely.
func Div(num, denom float64) float64 {
	if math.Abs(denom) < 1e-10 {
		return math.NaN()
	}
	return num / denom
}

// Clamp restricts v to [lo, hi]. NaN passes through unchanged.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// At returns s[i], or NaN if i is out of range.
func At(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// NaNSlice returns a slice of length n filled with NaN, the representation
// for indeterminate leading indicator entries.
func NaNSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// AllFinite reports whether every value in vs is finite.
func AllFinite(vs ...float64) bool {
	for _, v := range vs {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// Sign returns -1, 0 or 1 for the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
