package rules

import (
	"patterncore/internal/mathutil"
	"patterncore/internal/model"
)

// VolumeProfile checks that volume decreases across successive extremes
// (p1, p3[, p5]), each required to be at least one bar from series start.
func VolumeProfile(series *model.PriceSeries, extremes []model.Pivot) Result {
	if len(extremes) < 2 {
		return fail("need at least two extremes to compare volume profile")
	}
	for _, p := range extremes {
		if p.Idx < 1 {
			return fail("extreme is at the series start, no prior volume to compare")
		}
	}
	for i := 1; i < len(extremes); i++ {
		if series.V[extremes[i].Idx] >= series.V[extremes[i-1].Idx] {
			return fail("volume does not decrease across successive extremes")
		}
	}
	return pass()
}

// BreakoutVolume checks that volume at breakoutIdx is at least multiplier
// times the mean volume of the lookbackBars preceding it.
func BreakoutVolume(series *model.PriceSeries, breakoutIdx, lookbackBars int, multiplier float64) Result {
	start := breakoutIdx - lookbackBars
	if start < 0 {
		start = 0
	}
	if start >= breakoutIdx {
		return fail("not enough prior bars to compute a lookback average")
	}
	avg := mathutil.Mean(series.V[start:breakoutIdx])
	if avg == 0 {
		return fail("lookback volume average is zero")
	}
	if series.V[breakoutIdx] >= multiplier*avg {
		return pass()
	}
	return fail("breakout volume is below the required multiple of its lookback average")
}
