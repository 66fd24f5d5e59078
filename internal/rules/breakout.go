package rules

import (
	"math"

	"patterncore/internal/model"
	"patterncore/internal/safemath"
)

// BreakoutFound scans forward from structuralEndIdx for the first bar that
// strictly breaks necklinePrice (close above it if breakUp, below it
// otherwise), within searchMaxBars. The breakout bar index is returned
// alongside Result, or -1 when no break is found.
func BreakoutFound(series *model.PriceSeries, structuralEndIdx int, necklinePrice float64, breakUp bool, searchMaxBars int) (Result, int) {
	n := series.Len()
	limit := structuralEndIdx + searchMaxBars
	if limit > n-1 {
		limit = n - 1
	}
	for i := structuralEndIdx + 1; i <= limit; i++ {
		c := series.C[i]
		if breakUp && c > necklinePrice {
			return pass(), i
		}
		if !breakUp && c < necklinePrice {
			return pass(), i
		}
	}
	return fail("no strict neckline break found within search_max_bars"), -1
}

// NecklineRetest checks that the retest bar's close returns within
// tolerance of the neckline, where tolerance is the larger of
// atr_multiplier * ATR[retestIdx] and pct_of_neckline * necklinePrice.
func NecklineRetest(series *model.PriceSeries, atr []float64, retestIdx int, necklinePrice, atrMultiplier, pctOfNeckline float64) Result {
	retestPrice := safemath.At(series.C, retestIdx)
	atrAtRetest := safemath.At(atr, retestIdx)
	if !safemath.IsFinite(retestPrice) {
		return fail("retest bar is out of range")
	}

	atrTolerance := 0.0
	if safemath.IsFinite(atrAtRetest) {
		atrTolerance = atrMultiplier * atrAtRetest
	}
	pctTolerance := pctOfNeckline * necklinePrice
	tolerance := math.Max(atrTolerance, pctTolerance)

	if math.Abs(retestPrice-necklinePrice) <= tolerance {
		return pass()
	}
	return fail("retest price is outside the neckline tolerance band")
}
