package indicator

import "patterncore/internal/safemath"

// EMA computes the Exponential Moving Average, NaN-padded for the first
// period-1 entries. Always returns a slice the same length as closes,
// even when there is not enough data to define a single value.
func EMA(closes []float64, period int) []float64 {
	out := safemath.NaNSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	multiplier := 2.0 / float64(period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	out[period-1] = sum / float64(period)

	for i := period; i < len(closes); i++ {
		out[i] = (closes[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// SMA computes the Simple Moving Average, NaN-padded for the first
// period-1 entries.
func SMA(closes []float64, period int) []float64 {
	out := safemath.NaNSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += closes[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}
