package rules

import "patterncore/internal/model"

// ExtremityInContext checks that pivot's price is the strict extremum of
// a window of bars around it, per §4.4. The window spans windowBars on
// each side when pastOnly is false (HNS/DTB), or windowBars strictly
// before pivot.Idx when pastOnly is true (TTB's context check on p1). The
// pivot's own bar is always excluded from the comparison.
func ExtremityInContext(series *model.PriceSeries, pivot model.Pivot, windowBars int, pastOnly bool) Result {
	n := series.Len()
	if windowBars <= 0 {
		return fail("window size must be positive")
	}

	var lo, hi int
	if pastOnly {
		lo, hi = pivot.Idx-windowBars, pivot.Idx-1
	} else {
		lo, hi = pivot.Idx-windowBars, pivot.Idx+windowBars
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}

	found := false
	for i := lo; i <= hi; i++ {
		if i == pivot.Idx {
			continue
		}
		found = true
		if pivot.Kind == model.Peak && series.H[i] >= pivot.Price {
			return fail("another bar in the context window reaches as high")
		}
		if pivot.Kind == model.Valley && series.L[i] <= pivot.Price {
			return fail("another bar in the context window reaches as low")
		}
	}
	if !found {
		return fail("context window is empty after excluding the pivot's own bar")
	}
	return pass()
}
