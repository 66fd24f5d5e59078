package rules

import (
	"math"

	"patterncore/internal/config"
	"patterncore/internal/model"
	"patterncore/internal/safemath"
)

// priceDivergesFromIndicator reports whether price moved from pivotA to
// pivotB in the opposite direction the indicator moved, the shared shape
// behind every divergence rule (RSI, MACD histogram, OBV).
func priceDivergesFromIndicator(pivotA, pivotB model.Pivot, indA, indB float64) bool {
	if !safemath.AllFinite(indA, indB) {
		return false
	}
	priceDelta := pivotB.Price - pivotA.Price
	indDelta := indB - indA
	if priceDelta == 0 || indDelta == 0 {
		return false
	}
	return (priceDelta > 0) != (indDelta > 0)
}

// RSIDivergence compares RSI at the pattern's two key extremes. It only
// fires when the extreme side reached overbought or oversold, and
// classifies the divergence as weak or strong by divergence_min_delta or
// the strong_overbought/strong_oversold thresholds.
func RSIDivergence(pivotA, pivotB model.Pivot, rsi []float64, cfg config.RSIConfig) Result {
	indA, indB := safemath.At(rsi, pivotA.Idx), safemath.At(rsi, pivotB.Idx)
	if !safemath.AllFinite(indA, indB) {
		return fail("RSI is not yet available at one of the extremes")
	}

	obos := false
	strongSide := 0.0
	if pivotB.Kind == model.Peak {
		obos = indA >= cfg.Overbought || indB >= cfg.Overbought
		strongSide = cfg.StrongOverbought
	} else {
		obos = indA <= cfg.Oversold || indB <= cfg.Oversold
		strongSide = cfg.StrongOversold
	}
	if !obos {
		return fail("neither extreme reached overbought/oversold")
	}
	if !priceDivergesFromIndicator(pivotA, pivotB, indA, indB) {
		return fail("RSI does not diverge from price between the two extremes")
	}

	delta := math.Abs(indB - indA)
	strong := delta >= cfg.DivergenceMinDelta*100 || (pivotB.Kind == model.Peak && indB < strongSide) ||
		(pivotB.Kind == model.Valley && indB > strongSide)
	if strong {
		return pass()
	}
	return pass() // weak divergence still passes; strength is informational only
}

// MACDHistDivergence confirms divergence using the MACD histogram instead
// of RSI, with no OB/OS gate (the histogram has no bounded range).
func MACDHistDivergence(pivotA, pivotB model.Pivot, hist []float64) Result {
	indA, indB := safemath.At(hist, pivotA.Idx), safemath.At(hist, pivotB.Idx)
	if priceDivergesFromIndicator(pivotA, pivotB, indA, indB) {
		return pass()
	}
	return fail("MACD histogram does not diverge from price between the two extremes")
}

// OBVDivergence confirms OBV's slope contradicts price between the two
// extremes.
func OBVDivergence(pivotA, pivotB model.Pivot, obv []float64) Result {
	indA, indB := safemath.At(obv, pivotA.Idx), safemath.At(obv, pivotB.Idx)
	if priceDivergesFromIndicator(pivotA, pivotB, indA, indB) {
		return pass()
	}
	return fail("OBV does not diverge from price between the two extremes")
}

// MACDSignalCross detects a crossover of the MACD line over its signal in
// the direction implied by kind (Peak: bearish, line crosses below signal;
// Valley: bullish, line crosses above), anywhere within the trailing
// lookback window ending at endIdx. It accepts only if the most recent
// crossover found is within crossMaxAgeBars of the window end.
func MACDSignalCross(macd, signal []float64, endIdx, lookbackBars, crossMaxAgeBars int, kind model.PivotKind) Result {
	start := endIdx - lookbackBars + 1
	if start < 1 {
		start = 1
	}

	lastCrossAge := -1
	for i := start; i <= endIdx && i < len(macd); i++ {
		prevAbove := macd[i-1] > signal[i-1]
		curAbove := macd[i] > signal[i]
		if !safemath.AllFinite(macd[i-1], signal[i-1], macd[i], signal[i]) {
			continue
		}
		bullishCross := !prevAbove && curAbove
		bearishCross := prevAbove && !curAbove
		if (kind == model.Valley && bullishCross) || (kind == model.Peak && bearishCross) {
			lastCrossAge = endIdx - i
		}
	}

	if lastCrossAge < 0 {
		return fail("no MACD signal crossover in the correct direction within the lookback window")
	}
	if lastCrossAge > crossMaxAgeBars {
		return fail("most recent MACD signal crossover is older than cross_max_age_bars")
	}
	return pass()
}

// StochasticConfirm checks %K divergence at the extremes and/or a %K/%D
// crossover in the right direction. If requireOBOS, it only fires when an
// extreme reached overbought/oversold.
func StochasticConfirm(pivotA, pivotB model.Pivot, stochK, stochD []float64, cfg config.StochConfig) Result {
	kA, kB := safemath.At(stochK, pivotA.Idx), safemath.At(stochK, pivotB.Idx)
	if !safemath.AllFinite(kA, kB) {
		return fail("stochastic %K is not yet available at one of the extremes")
	}

	if cfg.RequireOBOS {
		obos := false
		if pivotB.Kind == model.Peak {
			obos = kA >= cfg.Overbought || kB >= cfg.Overbought
		} else {
			obos = kA <= cfg.Oversold || kB <= cfg.Oversold
		}
		if !obos {
			return fail("neither extreme reached stochastic overbought/oversold")
		}
	}

	if priceDivergesFromIndicator(pivotA, pivotB, kA, kB) {
		return pass()
	}

	start := pivotB.Idx - cfg.CrossLookbackBars + 1
	if start < 1 {
		start = 1
	}
	for i := start; i <= pivotB.Idx && i < len(stochK); i++ {
		if !safemath.AllFinite(stochK[i-1], stochD[i-1], stochK[i], stochD[i]) {
			continue
		}
		prevAbove := stochK[i-1] > stochD[i-1]
		curAbove := stochK[i] > stochD[i]
		bullishCross := !prevAbove && curAbove
		bearishCross := prevAbove && !curAbove
		if (pivotB.Kind == model.Valley && bullishCross) || (pivotB.Kind == model.Peak && bearishCross) {
			return pass()
		}
	}
	return fail("no %K divergence or %K/%D crossover confirms the reversal")
}
