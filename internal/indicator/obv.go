package indicator

import "patterncore/internal/safemath"

// OBV computes On-Balance Volume: a running cumulative sign(Δclose) ×
// volume, per SPEC_FULL §4.2. Defined from bar 0 (cumulative value 0,
// nothing to compare yet) rather than NaN, since OBV has no warm-up
// requirement the way RSI/MACD/Stochastic do.
func OBV(close, volume []float64) []float64 {
	n := len(close)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	running := 0.0
	out[0] = running
	for i := 1; i < n; i++ {
		running += safemath.Sign(close[i]-close[i-1]) * volume[i]
		out[i] = running
	}
	return out
}
