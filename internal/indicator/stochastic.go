package indicator

import "patterncore/internal/safemath"

// Stochastic computes %K (raw, then smoothed by smoothK) and %D (an SMA of
// the smoothed %K over dPeriod), each NaN-padded to the length of close.
// Raw %K at bar i is 100 * (close[i]-lowestLow)/(highestHigh-lowestLow)
// over the trailing kPeriod window.
func Stochastic(high, low, close []float64, kPeriod, dPeriod, smoothK int) (stochK, stochD []float64) {
	n := len(close)
	rawK := safemath.NaNSlice(n)
	if kPeriod <= 0 || n < kPeriod {
		return safemath.NaNSlice(n), safemath.NaNSlice(n)
	}

	for i := kPeriod - 1; i < n; i++ {
		hh, ll := high[i-kPeriod+1], low[i-kPeriod+1]
		for j := i - kPeriod + 2; j <= i; j++ {
			if high[j] > hh {
				hh = high[j]
			}
			if low[j] < ll {
				ll = low[j]
			}
		}
		rawK[i] = safemath.Div(close[i]-ll, hh-ll) * 100
		if !safemath.IsFinite(rawK[i]) {
			rawK[i] = 50 // flat range: neither overbought nor oversold
		}
	}

	stochK = smoothSeries(rawK, smoothK)
	stochD = smoothSeries(stochK, dPeriod)
	return stochK, stochD
}

// smoothSeries applies an SMA to a NaN-headed series without letting the
// NaN head poison the window sums; it treats the series as starting at
// its first finite value.
func smoothSeries(series []float64, period int) []float64 {
	n := len(series)
	out := safemath.NaNSlice(n)
	if period <= 1 {
		copy(out, series)
		return out
	}

	start := -1
	for i, v := range series {
		if safemath.IsFinite(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}

	for i := start + period - 1; i < n; i++ {
		sum, ok := 0.0, true
		for j := i - period + 1; j <= i; j++ {
			if !safemath.IsFinite(series[j]) {
				ok = false
				break
			}
			sum += series[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}
