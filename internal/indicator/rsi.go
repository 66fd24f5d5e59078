package indicator

import (
	"math"

	"patterncore/internal/safemath"
)

// RSI computes Wilder-smoothed RSI over an arbitrary price series (close,
// high or low — the rule library needs all three variants), clamped to
// [0, 100]. Always returns a slice the length of prices, NaN-padded for
// the first `period` entries rather than truncated.
func RSI(prices []float64, period int) []float64 {
	out := safemath.NaNSlice(len(prices))
	if period <= 0 || len(prices) <= period {
		return out
	}

	const epsilon = 1e-10

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss, epsilon)

	for i := period + 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFromAverages(avgGain, avgLoss, epsilon)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss, epsilon float64) float64 {
	if avgLoss < epsilon {
		if avgGain < epsilon {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return math.Max(0, math.Min(100, 100-(100/(1+rs))))
}
