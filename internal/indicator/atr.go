package indicator

import (
	"math"

	"patterncore/internal/safemath"
)

// TrueRange computes the per-bar true range: max(high-low, |high-prevClose|,
// |low-prevClose|), undefined (NaN) at index 0.
func TrueRange(high, low, close []float64) []float64 {
	n := len(close)
	out := safemath.NaNSlice(n)
	for i := 1; i < n; i++ {
		tr1 := high[i] - low[i]
		tr2 := math.Abs(high[i] - close[i-1])
		tr3 := math.Abs(low[i] - close[i-1])
		out[i] = math.Max(tr1, math.Max(tr2, tr3))
	}
	return out
}

// ATR computes Wilder-smoothed Average True Range as a full NaN-padded
// column. With fewer than period+1 bars the column is EMA(TR, period)
// instead; since TR is NaN at bar 0 and fewer than period finite TR values
// exist, that column is all-NaN.
func ATR(high, low, close []float64, period int) []float64 {
	n := len(close)
	out := safemath.NaNSlice(n)
	if period <= 0 || n == 0 {
		return out
	}

	tr := TrueRange(high, low, close)

	if n < period+1 {
		return EMA(tr, period)
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	current := sum / float64(period)
	out[period] = current

	for i := period + 1; i < n; i++ {
		current = ((current * float64(period-1)) + tr[i]) / float64(period)
		out[i] = current
	}
	return out
}
