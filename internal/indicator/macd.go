package indicator

import "patterncore/internal/safemath"

// MACD computes the line, signal and histogram columns at
// (fastPeriod, slowPeriod, signalPeriod), each the length of closes and
// NaN-padded until slowPeriod+signalPeriod bars are available, per
// SPEC_FULL §4.2.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal, histogram []float64) {
	n := len(closes)
	line = safemath.NaNSlice(n)
	signal = safemath.NaNSlice(n)
	histogram = safemath.NaNSlice(n)
	if n < slowPeriod+signalPeriod {
		return line, signal, histogram
	}

	fastEMA := EMA(closes, fastPeriod)
	slowEMA := EMA(closes, slowPeriod)

	for i := slowPeriod - 1; i < n; i++ {
		if safemath.IsFinite(fastEMA[i]) && safemath.IsFinite(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signalSeed := line[slowPeriod-1:]
	signalEMA := EMA(signalSeed, signalPeriod)
	for i, v := range signalEMA {
		idx := slowPeriod - 1 + i
		if safemath.IsFinite(v) {
			signal[idx] = v
			histogram[idx] = line[idx] - v
		}
	}
	return line, signal, histogram
}
